package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xh7ml/URLxtract/internal/suffix"
)

var (
	// ErrNoRuleset is returned by Parse when the parser has no suffix list.
	ErrNoRuleset = errors.New("no suffix ruleset")
	// ErrNotRegistrable reports an IP literal or a host that is itself a public suffix.
	ErrNotRegistrable = errors.New("host has no registrable domain")
)

// Parser splits hostnames against an immutable suffix ruleset. It holds no
// other state and is safe for concurrent use.
type Parser struct {
	rules *suffix.Ruleset
}

func NewParser(rules *suffix.Ruleset) *Parser {
	return &Parser{rules: rules}
}

// Ready reports whether the parser has a ruleset to match against.
func (p *Parser) Ready() bool {
	return p != nil && p.rules != nil
}

// Parse derives the host of raw and breaks it into subdomain, registered
// domain and public suffix.
func (p *Parser) Parse(raw string) (Breakdown, error) {
	if !p.Ready() {
		return Breakdown{}, ErrNoRuleset
	}

	h, err := Hostname(raw)
	if err != nil {
		return Breakdown{}, err
	}
	if h.IP {
		return Breakdown{}, fmt.Errorf("%w: %s is an ip literal", ErrNotRegistrable, h.Name)
	}

	sfx := p.rules.Match(h.Labels)
	b := Breakdown{PublicSuffix: strings.Join(sfx, ".")}

	n := len(h.Labels) - len(sfx)
	if n <= 0 {
		return b, fmt.Errorf("%w: %s is a public suffix", ErrNotRegistrable, h.Name)
	}

	b.RegisteredDomain = strings.Join(h.Labels[n-1:], ".")
	b.Subdomain = h.Labels[:n-1]
	b.FQDN = h.Name
	return b, nil
}

// FQDN returns the full normalized hostname of raw, or "" when raw cannot
// be parsed or has no label beyond its public suffix.
func (p *Parser) FQDN(raw string) string {
	b, err := p.Parse(raw)
	if err != nil {
		return ""
	}
	return b.FQDN
}

// Apex returns the registered domain of raw, or "" when there is none.
func (p *Parser) Apex(raw string) string {
	b, err := p.Parse(raw)
	if err != nil {
		return ""
	}
	return b.RegisteredDomain
}

// Extract dispatches to FQDN or Apex.
func (p *Parser) Extract(raw string, mode Mode) string {
	switch mode {
	case ModeFQDN:
		return p.FQDN(raw)
	case ModeApex:
		return p.Apex(raw)
	default:
		return ""
	}
}
