package suffix

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// Kind distinguishes the three public suffix rule forms.
type Kind uint8

const (
	Plain Kind = 1 << iota
	Wildcard
	Exception
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Wildcard:
		return "wildcard"
	case Exception:
		return "exception"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Rule is one entry of a public suffix list.
//
// Labels holds the literal labels only, most significant last, so the rule
// "*.kawasaki.jp" is stored as Wildcard{"kawasaki", "jp"} and "!city.kawasaki.jp"
// as Exception{"city", "kawasaki", "jp"}.
type Rule struct {
	Labels []string
	Kind   Kind
}

// Key is the dotted form of the literal labels.
func (r Rule) Key() string {
	return strings.Join(r.Labels, ".")
}

func (r Rule) String() string {
	switch r.Kind {
	case Wildcard:
		return "*." + r.Key()
	case Exception:
		return "!" + r.Key()
	default:
		return r.Key()
	}
}

// ParseRule parses a single list token such as "co.uk", "*.ck" or "!www.ck".
// Unicode labels are converted to their A-label form.
func ParseRule(token string) (Rule, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Rule{}, fmt.Errorf("empty rule")
	}

	kind := Plain
	switch {
	case strings.HasPrefix(token, "!"):
		kind = Exception
		token = token[1:]
	case strings.HasPrefix(token, "*."):
		kind = Wildcard
		token = token[2:]
	}

	if token == "" {
		return Rule{}, fmt.Errorf("rule has no labels")
	}
	if strings.Contains(token, "*") {
		return Rule{}, fmt.Errorf("unsupported wildcard position in %q", token)
	}

	ascii, err := toASCII(token)
	if err != nil {
		return Rule{}, fmt.Errorf("idna %q: %w", token, err)
	}

	labels := strings.Split(ascii, ".")
	for _, l := range labels {
		if l == "" {
			return Rule{}, fmt.Errorf("empty label in %q", token)
		}
	}
	if kind == Exception && len(labels) < 2 {
		return Rule{}, fmt.Errorf("exception %q must have at least two labels", token)
	}

	return Rule{Labels: labels, Kind: kind}, nil
}

func toASCII(s string) (string, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			a, err := idna.ToASCII(s)
			if err != nil {
				return "", err
			}
			return strings.ToLower(a), nil
		}
	}
	return strings.ToLower(s), nil
}
