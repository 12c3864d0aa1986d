package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures Make.
type Option func(*config)

type config struct {
	maxLength int
	lowercase bool
	replace   map[string]string
}

// MaxLength truncates the slug to n characters. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxLength = n
		}
	}
}

// KeepCase disables lowercasing.
func KeepCase() Option {
	return func(c *config) { c.lowercase = false }
}

// Replace applies replacements (e.g. "&" to "and") before slugifying.
func Replace(pairs map[string]string) Option {
	return func(c *config) { c.replace = pairs }
}

// Make returns the slug of s. The result never starts or ends with a hyphen
// and may be empty.
func Make(s string, opts ...Option) string {
	cfg := &config{lowercase: true}
	for _, opt := range opts {
		opt(cfg)
	}
	for old, repl := range cfg.replace {
		s = strings.ReplaceAll(s, old, " "+repl+" ")
	}
	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))
	sep := false
	for _, r := range s {
		if cfg.maxLength > 0 && b.Len() >= cfg.maxLength {
			break
		}
		if !isAlnum(r) {
			sep = b.Len() > 0
			continue
		}
		if sep {
			if cfg.maxLength > 0 && b.Len()+1 >= cfg.maxLength {
				break
			}
			b.WriteByte('-')
			sep = false
		}
		if cfg.lowercase {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Valid reports whether s is a non-empty slug as produced by Make with
// KeepCase.
func Valid(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i, r := range s {
		if r == '-' {
			if s[i-1] == '-' {
				return false
			}
			continue
		}
		if !isAlnum(r) {
			return false
		}
	}
	return true
}

// fold strips combining marks after decomposition: "é" becomes "e".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
