package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/0xh7ml/URLxtract/internal/domain"
)

// ErrInvalidMode is returned unless exactly one of --domain and --apex is set.
var ErrInvalidMode = errors.New("exactly one of --domain or --apex must be specified")

const maxWorkers = 1024

type Config struct {
	URL            string
	File           string
	Mode           domain.Mode
	Uniq           bool
	Silent         bool
	Verbose        bool
	SuffixListPath string // empty means the bundled list
	IncludePrivate bool
	Workers        int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load parses command line arguments (without the program name) on top of
// environment defaults. Usage goes to usage; pflag.ErrHelp is returned for -h.
func Load(name string, args []string, usage io.Writer) (Config, error) {
	cfg := Config{
		SuffixListPath: getenv("URLXTRACT_PSL", ""),
	}

	workersStr := getenv("URLXTRACT_WORKERS", strconv.Itoa(runtime.GOMAXPROCS(0)))
	n, err := strconv.Atoi(workersStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid URLXTRACT_WORKERS=%q: %w", workersStr, err)
	}
	if n < 1 {
		return Config{}, fmt.Errorf("URLXTRACT_WORKERS too small (%d), must be >=1", n)
	}
	if n > maxWorkers {
		return Config{}, fmt.Errorf("URLXTRACT_WORKERS too large (%d), must be <=%d", n, maxWorkers)
	}
	cfg.Workers = n

	var fqdn, apex bool

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVarP(&cfg.URL, "url", "u", "", "Single URL to extract domain from")
	fs.StringVarP(&cfg.File, "file", "f", "", "File containing URLs to extract domains from")
	fs.BoolVar(&fqdn, "domain", false, "Extract fully qualified domain names (FQDN)")
	fs.BoolVar(&apex, "apex", false, "Extract apex (registered) domains")
	fs.BoolVar(&cfg.Uniq, "uniq", false, "Only output unique domains")
	fs.BoolVar(&cfg.Silent, "silent", false, "Silent mode")
	fs.StringVar(&cfg.SuffixListPath, "psl", cfg.SuffixListPath, "Public suffix list file (default: bundled snapshot, env URLXTRACT_PSL)")
	fs.BoolVar(&cfg.IncludePrivate, "private", false, "Treat private suffixes (github.io, blogspot.com, ...) as public suffixes")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log skipped URLs and ruleset details to stderr")
	fs.SortFlags = false

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch {
	case fqdn && !apex:
		cfg.Mode = domain.ModeFQDN
	case apex && !fqdn:
		cfg.Mode = domain.ModeApex
	default:
		return Config{}, ErrInvalidMode
	}

	return cfg, nil
}
