package domain

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// ErrUnparseableURL is wrapped by every Hostname failure.
var ErrUnparseableURL = errors.New("unparseable url")

// Hostname takes a raw URL as found in logs, crawls or a browser address bar
// and extracts its normalized host. The scheme is optional and never checked.
func Hostname(raw string) (Host, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Host{}, fmt.Errorf("%w: empty url", ErrUnparseableURL)
	}

	host, bracketed, err := splitHost(authority(raw))
	if err != nil {
		return Host{}, fmt.Errorf("%w: %q: %v", ErrUnparseableURL, raw, err)
	}

	if ip := net.ParseIP(host); ip != nil {
		name := ip.String()
		return Host{Name: name, Labels: []string{name}, IP: true}, nil
	}
	if bracketed {
		return Host{}, fmt.Errorf("%w: %q: bad ip literal", ErrUnparseableURL, raw)
	}
	if strings.ContainsAny(host, " \t:[]") {
		return Host{}, fmt.Errorf("%w: %q: invalid host", ErrUnparseableURL, raw)
	}

	name, err := toASCII(host)
	if err != nil {
		return Host{}, fmt.Errorf("%w: %q: %v", ErrUnparseableURL, raw, err)
	}

	labels := strings.Split(name, ".")
	for _, l := range labels {
		if l == "" {
			return Host{}, fmt.Errorf("%w: %q: empty label", ErrUnparseableURL, raw)
		}
	}

	return Host{Name: name, Labels: labels}, nil
}

// authority returns the userinfo-free host[:port] part of raw.
func authority(raw string) string {
	rest := raw
	if i := strings.Index(rest, "://"); i != -1 {
		rest = rest[i+3:]
	} else if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
	}

	if end := strings.IndexAny(rest, "/?#\\"); end != -1 {
		rest = rest[:end]
	}
	if at := strings.LastIndexByte(rest, '@'); at != -1 {
		rest = rest[at+1:]
	}
	return rest
}

// splitHost drops the port and one trailing dot. bracketed reports an
// "[...]" literal, which must turn out to be an IP.
func splitHost(hostport string) (host string, bracketed bool, err error) {
	host = hostport
	switch {
	case strings.HasPrefix(host, "["):
		end := strings.IndexByte(host, ']')
		if end == -1 {
			return "", false, fmt.Errorf("missing ']'")
		}
		if tail := host[end+1:]; tail != "" && tail[0] != ':' {
			return "", false, fmt.Errorf("garbage after ip literal")
		}
		host, bracketed = host[1:end], true
	case strings.Count(host, ":") == 1:
		// A bare IPv6 literal has several colons and no port.
		host = host[:strings.IndexByte(host, ':')]
	}

	host = strings.TrimSuffix(strings.TrimSpace(host), ".")
	if host == "" {
		return "", false, fmt.Errorf("empty host")
	}
	return host, bracketed, nil
}

// toASCII lowercases host, going through IDNA only for non-ASCII input.
func toASCII(host string) (string, error) {
	for i := 0; i < len(host); i++ {
		if host[i] >= utf8.RuneSelf {
			a, err := idna.Lookup.ToASCII(host)
			if err != nil {
				return "", fmt.Errorf("idna: %w", err)
			}
			return strings.ToLower(a), nil
		}
	}
	return strings.ToLower(host), nil
}
