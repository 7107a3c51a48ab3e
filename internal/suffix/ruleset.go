package suffix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	privateBegin = "===BEGIN PRIVATE DOMAINS==="
	privateEnd   = "===END PRIVATE DOMAINS==="
	comment      = "//"
)

// ErrNoRules is returned when a source parses cleanly but yields no rules.
var ErrNoRules = errors.New("suffix list contains no rules")

// LoadError reports a rule source that could not be turned into a Ruleset.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load suffix list %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Options controls how a rule source is parsed.
type Options struct {
	// IncludePrivate keeps rules from the PRIVATE DOMAINS section
	// (blogspot.com, github.io, ...). Off by default, so those hosts
	// resolve to their ICANN registrable domain.
	IncludePrivate bool

	// Source names the input in errors. Defaults to "reader".
	Source string

	Logger *zap.Logger
}

// Ruleset is an immutable, indexed public suffix list. It is safe for
// concurrent use once returned by Load.
type Ruleset struct {
	// dotted literal suffix -> set of rule kinds sharing it
	rules map[string]Kind
	size  int
}

// Load parses a public suffix list: one rule per line, "*." prefix for
// wildcards, "!" prefix for exceptions, "//" comments and blank lines ignored.
func Load(r io.Reader, opts Options) (*Ruleset, error) {
	src := opts.Source
	if src == "" {
		src = "reader"
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rs := &Ruleset{rules: make(map[string]Kind)}

	var (
		private        bool
		skippedPrivate int
		skippedBad     int
		duplicates     int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, comment) {
			switch {
			case strings.Contains(line, privateBegin):
				private = true
			case strings.Contains(line, privateEnd):
				private = false
			}
			continue
		}
		if private && !opts.IncludePrivate {
			skippedPrivate++
			continue
		}

		// Only the first whitespace-delimited token is the rule.
		token := strings.Fields(line)[0]
		rule, err := ParseRule(token)
		if err != nil {
			skippedBad++
			log.Debug("suffix: skipping rule", zap.String("rule", token), zap.Error(err))
			continue
		}
		key := rule.Key()
		if rs.rules[key]&rule.Kind != 0 {
			duplicates++
			continue
		}
		rs.rules[key] |= rule.Kind
		rs.size++
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Source: src, Err: err}
	}
	if rs.size == 0 {
		return nil, &LoadError{Source: src, Err: ErrNoRules}
	}

	log.Debug("suffix: list loaded",
		zap.String("source", src),
		zap.Int("rules", rs.size),
		zap.Int("skipped_private", skippedPrivate),
		zap.Int("skipped_invalid", skippedBad),
		zap.Int("duplicates", duplicates),
	)
	return rs, nil
}

// LoadFile reads a public suffix list from disk.
func LoadFile(path string, opts Options) (*Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	opts.Source = path
	return Load(f, opts)
}

// Len returns the number of distinct rules.
func (rs *Ruleset) Len() int {
	if rs == nil {
		return 0
	}
	return rs.size
}

// Match returns the public suffix of a hostname given as lowercase labels,
// most significant last. The result is a sub-slice of labels.
//
// An exception rule always prevails and yields the rule minus its leftmost
// label. Otherwise the longest plain or wildcard match wins, and with no
// match at all the final label is the suffix.
func (rs *Ruleset) Match(labels []string) []string {
	n := len(labels)
	if n == 0 {
		return nil
	}

	best := 0
	for i := 0; i < n; i++ {
		kinds := rs.lookup(strings.Join(labels[i:], "."))
		if kinds == 0 {
			continue
		}
		if kinds&Exception != 0 {
			// Scanning from the longest suffix, the first exception found
			// is the longest one.
			return labels[i+1:]
		}
		if kinds&Wildcard != 0 && i > 0 && n-i+1 > best {
			best = n - i + 1
		}
		if kinds&Plain != 0 && n-i > best {
			best = n - i
		}
	}

	if best == 0 {
		best = 1
	}
	return labels[n-best:]
}

func (rs *Ruleset) lookup(key string) Kind {
	if rs == nil {
		return 0
	}
	return rs.rules[key]
}
