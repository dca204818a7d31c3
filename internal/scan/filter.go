package scan

import (
	"github.com/clarkmcc/treepp/internal/entry"
	"github.com/clarkmcc/treepp/internal/gitignore"
	"github.com/clarkmcc/treepp/internal/patternmatch"
)

// Options configures a single directory scan. The same Options value is
// shared by every directory visited during one run; only the gitignore
// chain and depth change as the walk descends.
type Options struct {
	// ShowFiles mirrors --files: when false, only directories are kept.
	ShowFiles bool

	// Exclude patterns drop any matching entry, file or directory.
	Exclude []*patternmatch.Matcher

	// Include patterns, when non-empty, require a file to match at least
	// one to be kept; directories always pass regardless of Include.
	Include []*patternmatch.Matcher

	// GitignoreEnabled mirrors --gitignore: when true, .gitignore files are
	// discovered and applied via the gitignore chain.
	GitignoreEnabled bool

	// LevelLimit mirrors --level; -1 means unlimited depth.
	LevelLimit int
}

// accept applies scanner filter steps 2-6 (spec.md §4.3) to one raw entry.
// Step 1 (stat) has already happened by the time this is called; a stat
// failure causes the entry to never reach accept at all.
func accept(opts Options, raw rawEntry, relPath string, childDepth int, chain gitignore.Chain) bool {
	if !opts.ShowFiles && raw.kind != entry.Directory {
		return false
	}

	for _, m := range opts.Exclude {
		if matchAgainst(m, raw.name, relPath) {
			return false
		}
	}

	if len(opts.Include) > 0 && raw.kind != entry.Directory {
		matched := false
		for _, m := range opts.Include {
			if matchAgainst(m, raw.name, relPath) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if opts.GitignoreEnabled && gitignore.IsIgnored(relPath, raw.kind == entry.Directory, chain) {
		return false
	}

	if opts.LevelLimit >= 0 && childDepth > opts.LevelLimit {
		return false
	}

	return true
}

// matchAgainst matches m against name when m has no "/" in its original
// pattern, or against relPath (relative to the scan root) when it does.
func matchAgainst(m *patternmatch.Matcher, name, relPath string) bool {
	if m.PathMode() {
		return m.Matches(relPath)
	}
	return m.Matches(name)
}

// shouldRecurse reports whether a directory at childDepth should be
// scanned at all, per the spec's level-limit rule that children of an
// entry at depth L are never scanned.
func shouldRecurse(opts Options, childDepth int) bool {
	return opts.LevelLimit < 0 || childDepth < opts.LevelLimit
}
