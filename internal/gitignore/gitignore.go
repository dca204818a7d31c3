// Package gitignore implements per-directory .gitignore parsing and
// hierarchical chain evaluation. A Chain accumulates one
// (anchor_directory, compiled_rules) pair per directory level as the walker
// descends; it is never mutated once built and is inherited by reference by
// child directories, per the spec's Chain invariant.
//
// Rule compilation is delegated to github.com/codeglyph/go-dotignore/v2,
// which implements the full gitignore line grammar this package's contract
// requires: leading "!" negation, leading "/" root anchoring, trailing "/"
// directory restriction, "*" that does not cross "/", and "**" that matches
// any number of path segments.
package gitignore

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	dotignore "github.com/codeglyph/go-dotignore/v2"
)

// Rules is one directory's compiled .gitignore rule set.
type Rules struct {
	matcher *dotignore.PatternMatcher
}

// Parse compiles the bytes of a single .gitignore file. anchor is the
// directory (relative to the scan root, "." for the root itself) that the
// file's patterns are anchored to; it is not otherwise interpreted by
// Parse, only carried by the caller into the Chain link.
//
// Parse returns an error only when the file's contents are syntactically
// invalid (e.g. a bare "!" line); callers should treat such an error as a
// non-fatal warning and skip appending this directory's rules, per the
// spec's failure semantics for unreadable/invalid .gitignore files.
func Parse(fileBytes []byte, anchor string) (*Rules, error) {
	matcher, err := dotignore.NewPatternMatcherFromReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("gitignore: parsing rules anchored at %q: %w", anchor, err)
	}
	return &Rules{matcher: matcher}, nil
}

// link is one level of an evaluated chain: an anchor directory and its
// compiled rules.
type link struct {
	anchor string
	rules  *Rules
}

// Chain is an ordered, append-only list of (anchor, rules) pairs
// accumulated from the scan root down to the current directory. The zero
// value is an empty chain (no .gitignore files seen yet).
type Chain struct {
	links []link
}

// Append returns a new Chain equal to c with one more (anchor, rules) pair
// added at the end. c itself is never mutated, so it can continue to be
// shared by reference with the caller's siblings while the returned chain
// is handed to children of the new anchor directory.
func (c Chain) Append(anchor string, rules *Rules) Chain {
	next := make([]link, len(c.links), len(c.links)+1)
	copy(next, c.links)
	next = append(next, link{anchor: anchor, rules: rules})
	return Chain{links: next}
}

// IsIgnored reports whether pathRelativeToRoot (forward-slash separated,
// relative to the scan root) should be ignored under chain. isDir
// indicates whether the path names a directory, which directory-only
// patterns (trailing "/") require.
//
// Rules are evaluated outermost anchor to innermost; within that order the
// last rule across the whole chain that matches the path decides: a match
// by a non-negated pattern ignores the path, a match by a negated pattern
// un-ignores it, and a directory whose chain produces no match at all is
// not ignored.
func IsIgnored(pathRelativeToRoot string, isDir bool, chain Chain) bool {
	normalized := strings.TrimPrefix(path.Clean(pathRelativeToRoot), "./")
	if normalized == "." || normalized == "" {
		return false
	}

	ignored := false
	for _, l := range chain.links {
		rel := relativeTo(normalized, l.anchor)
		if rel == "" {
			continue
		}
		matchPath := rel
		if isDir && !strings.HasSuffix(matchPath, "/") {
			// go-dotignore matches directory-only patterns against a
			// trailing-slash form of the path.
			matchPath += "/"
		}

		matched, anyMatched, err := l.rules.matcher.MatchesWithTracking(matchPath)
		if err != nil || !anyMatched {
			continue
		}
		ignored = matched
	}
	return ignored
}

// relativeTo returns normalizedPath relative to anchor ("." for the scan
// root), or "" if normalizedPath does not fall under anchor at all.
func relativeTo(normalizedPath, anchor string) string {
	if anchor == "." || anchor == "" {
		return normalizedPath
	}
	prefix := anchor + "/"
	if !strings.HasPrefix(normalizedPath, prefix) {
		return ""
	}
	return strings.TrimPrefix(normalizedPath, prefix)
}
