package suffix

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testList = `// test list
// ===BEGIN ICANN DOMAINS===
com
uk
co.uk
jp
*.kawasaki.jp
!city.kawasaki.jp
*.ck
!www.ck
рф
// ===END ICANN DOMAINS===
// ===BEGIN PRIVATE DOMAINS===
blogspot.com
// ===END PRIVATE DOMAINS===
`

func mustLoad(t *testing.T, src string, opts Options) *Ruleset {
	t.Helper()
	rs, err := Load(strings.NewReader(src), opts)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return rs
}

func TestMatch(t *testing.T) {
	rs := mustLoad(t, testList, Options{})

	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "plain tld", host: "example.com", want: "com"},
		{name: "longest match wins", host: "example.co.uk", want: "co.uk"},
		{name: "longest match with subdomain", host: "a.b.example.co.uk", want: "co.uk"},
		{name: "shorter rule when longer absent", host: "example.uk", want: "uk"},
		{name: "exception over wildcard", host: "www.ck", want: "ck"},
		{name: "exception with subdomain", host: "a.www.ck", want: "ck"},
		{name: "wildcard", host: "foo.ck", want: "foo.ck"},
		{name: "wildcard with subdomain", host: "bar.foo.ck", want: "foo.ck"},
		{name: "wildcard needs extra label", host: "ck", want: "ck"},
		{name: "wildcard under plain", host: "a.b.kawasaki.jp", want: "b.kawasaki.jp"},
		{name: "exception under wildcard", host: "www.city.kawasaki.jp", want: "kawasaki.jp"},
		{name: "implicit rule", host: "foo.unknownsuffix123", want: "unknownsuffix123"},
		{name: "single label", host: "localhost", want: "localhost"},
		{name: "host is suffix", host: "co.uk", want: "co.uk"},
		{name: "idn rule", host: "xn--e1afmkfd.xn--p1ai", want: "xn--p1ai"},
		{name: "private rule skipped", host: "foo.blogspot.com", want: "com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(rs.Match(strings.Split(tt.host, ".")), ".")
			if got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestMatch_Empty(t *testing.T) {
	rs := mustLoad(t, testList, Options{})
	if got := rs.Match(nil); got != nil {
		t.Fatalf("Match(nil) = %v, want nil", got)
	}
}

func TestMatch_IncludePrivate(t *testing.T) {
	rs := mustLoad(t, testList, Options{IncludePrivate: true})

	got := strings.Join(rs.Match([]string{"foo", "blogspot", "com"}), ".")
	if got != "blogspot.com" {
		t.Fatalf("Match = %q, want %q", got, "blogspot.com")
	}
}

func TestLoad_SkipsCommentsAndInvalid(t *testing.T) {
	src := `
// comment
com   trailing text is ignored

!com
*.
org
org
`
	rs := mustLoad(t, src, Options{})
	if rs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rs.Len())
	}
}

func TestLoad_NoRules(t *testing.T) {
	_, err := Load(strings.NewReader("// only comments\n\n"), Options{Source: "empty"})
	if !errors.Is(err, ErrNoRules) {
		t.Fatalf("Load error = %v, want ErrNoRules", err)
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load error = %T, want *LoadError", err)
	}
	if le.Source != "empty" {
		t.Errorf("Source = %q, want %q", le.Source, "empty")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psl.dat")
	if err := os.WriteFile(path, []byte(testList), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	rs, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if rs.Len() == 0 {
		t.Fatal("expected rules")
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.dat"), Options{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("LoadFile(missing) error = %v, want *LoadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		token   string
		want    string
		kind    Kind
		wantErr bool
	}{
		{token: "co.uk", want: "co.uk", kind: Plain},
		{token: "*.ck", want: "*.ck", kind: Wildcard},
		{token: "!www.ck", want: "!www.ck", kind: Exception},
		{token: "CO.UK", want: "co.uk", kind: Plain},
		{token: "рф", want: "xn--p1ai", kind: Plain},
		{token: "!ck", wantErr: true},
		{token: "a.*.b", wantErr: true},
		{token: "a..b", wantErr: true},
		{token: "*.", wantErr: true},
		{token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			r, err := ParseRule(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRule(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if r.String() != tt.want {
				t.Errorf("String() = %q, want %q", r.String(), tt.want)
			}
			if r.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", r.Kind, tt.kind)
			}
		})
	}
}

func BenchmarkMatch(b *testing.B) {
	rs, err := Default(Options{})
	if err != nil {
		b.Fatalf("Default error: %v", err)
	}
	hosts := [][]string{
		strings.Split("www.example.com", "."),
		strings.Split("a.b.example.co.uk", "."),
		strings.Split("foo.bar.kawasaki.jp", "."),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if rs.Match(hosts[i%len(hosts)]) == nil {
			b.Fatal("expected suffix")
		}
	}
}
