package domain

import "fmt"

// Host — hostname part of a raw URL after normalize.
type Host struct {
	Name   string   // lowercase, A-label encoded, no trailing dot
	Labels []string // Name split on ".", most significant last
	IP     bool     // Name is an IPv4 or IPv6 literal
}

// Breakdown — one hostname split against the suffix list.
type Breakdown struct {
	Subdomain        []string // labels left of the registered domain, may be empty
	RegisteredDomain string   // one label + public suffix, empty if the host is a suffix
	PublicSuffix     string
	FQDN             string // full hostname, empty if there is no registrable part
}

// Mode selects what Extract returns for a URL.
type Mode int

const (
	ModeFQDN Mode = iota + 1
	ModeApex
)

func (m Mode) String() string {
	switch m {
	case ModeFQDN:
		return "domain"
	case ModeApex:
		return "apex"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}
