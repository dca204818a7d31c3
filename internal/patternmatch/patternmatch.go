// Package patternmatch implements the glob-style pattern compiler and
// matcher used by the scanner's --include/--exclude filters (the gitignore
// engine compiles its rules with go-dotignore instead). Patterns are compiled once and
// matched many times, so compilation does the expensive work (syntax
// validation, case normalization) up front.
//
// Supported syntax: "*" matches any run (including empty) of non-separator
// characters, "?" matches exactly one character, and "[abc]"/"[a-z]"
// character classes are supported. Brace expansion is not supported. This
// is deliberately a small surface, not a regex engine: patterns are few and
// matches are many, so one-shot compilation amortizes the cost.
package patternmatch

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher is a compiled pattern, ready to be matched against many names.
type Matcher struct {
	pattern        string
	caseInsensitive bool
	// pathMode is true when the original pattern contains a "/", meaning it
	// must be matched against the path relative to the scan root rather
	// than the bare base name.
	pathMode bool
}

// Compile validates and compiles pattern. When caseInsensitive is true, both
// the pattern and every name passed to Matches are folded with ASCII-only
// lowercasing before comparison; multibyte case folding is not performed.
//
// Compile returns an error if pattern contains an unterminated character
// class (e.g. "[abc") or other syntax doublestar rejects.
func Compile(pattern string, caseInsensitive bool) (*Matcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("patternmatch: invalid pattern %q: unterminated character class or bad syntax", pattern)
	}

	normalized := pattern
	if caseInsensitive {
		normalized = asciiLower(pattern)
	}

	return &Matcher{
		pattern:         normalized,
		caseInsensitive: caseInsensitive,
		pathMode:        strings.Contains(pattern, "/"),
	}, nil
}

// Matches reports whether name satisfies the compiled pattern. When the
// original pattern contained no "/", name is expected to be a bare base
// name; when it did contain "/", name is expected to be the path relative
// to the scan root (forward-slash separated).
func (m *Matcher) Matches(name string) bool {
	candidate := name
	if m.caseInsensitive {
		candidate = asciiLower(name)
	}

	matched, err := doublestar.Match(m.pattern, candidate)
	if err != nil {
		// ValidatePattern already rejected bad patterns at Compile time;
		// this should be unreachable in practice.
		return false
	}
	return matched
}

// PathMode reports whether this matcher must be evaluated against the
// path relative to the scan root (pattern contained "/") rather than the
// bare base name.
func (m *Matcher) PathMode() bool {
	return m.pathMode
}

// asciiLower lowercases only the ASCII letters A-Z, leaving every other byte
// (including multibyte UTF-8 sequences) untouched. This matches the spec's
// "ASCII-only lowering" requirement exactly, unlike strings.ToLower which
// applies full Unicode case folding.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
