package suffix

import (
	_ "embed"
	"strings"
)

// Upstream public_suffix_list.dat, snapshot of 2023-02-09. Replace the file
// to refresh it; --psl overrides it at runtime.
//
//go:embed data/public_suffix_list.dat
var bundled string

// BundledSource is the name reported for the embedded list.
const BundledSource = "bundled"

// Default loads the suffix list snapshot compiled into the binary.
func Default(opts Options) (*Ruleset, error) {
	opts.Source = BundledSource
	return Load(strings.NewReader(bundled), opts)
}
