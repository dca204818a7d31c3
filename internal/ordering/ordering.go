// Package ordering implements the sibling-list sort described in spec.md
// §4.4: a deterministic total order keyed by name, size, mtime, or ctime,
// with optional reversal and a directories-first partition applied after
// the primary sort.
package ordering

import (
	"cmp"
	"slices"
	"strings"

	"github.com/clarkmcc/treepp/internal/entry"
)

// Key selects the primary sort field for a sibling list.
type Key int

const (
	ByName Key = iota
	BySize
	ByModTime
	ByChangeTime
)

// Options controls how Sort orders one sibling list.
type Options struct {
	Key       Key
	Reverse   bool
	DirsFirst bool
}

// Sort returns a new slice containing entries in the order described by
// opts. The input slice is never mutated.
func Sort(entries []*entry.Entry, opts Options) []*entry.Entry {
	out := make([]*entry.Entry, len(entries))
	copy(out, entries)

	less := keyFunc(opts.Key)
	slices.SortStableFunc(out, less)

	if opts.Reverse {
		slices.Reverse(out)
	}

	if opts.DirsFirst {
		partitionDirsFirst(out)
	}

	return out
}

func keyFunc(key Key) func(a, b *entry.Entry) int {
	switch key {
	case BySize:
		return func(a, b *entry.Entry) int {
			if n := cmp.Compare(a.EffectiveSize(), b.EffectiveSize()); n != 0 {
				return n
			}
			return compareName(a, b)
		}
	case ByModTime:
		return func(a, b *entry.Entry) int {
			if n := a.ModTime.Compare(b.ModTime); n != 0 {
				return n
			}
			return compareName(a, b)
		}
	case ByChangeTime:
		return func(a, b *entry.Entry) int {
			if n := a.ChangeTime.Compare(b.ChangeTime); n != 0 {
				return n
			}
			return compareName(a, b)
		}
	default:
		return compareName
	}
}

// compareName implements the name key: case-insensitive lexicographic over
// the raw name bytes, ties broken by a case-sensitive comparison.
func compareName(a, b *entry.Entry) int {
	if n := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); n != 0 {
		return n
	}
	return cmp.Compare(a.Name, b.Name)
}

// partitionDirsFirst stably moves every Directory-kind entry ahead of all
// others, preserving relative order within each group. It runs after
// Reverse, matching the spec's "applied after sorting" (and, per this
// implementation's Open Question resolution, after reversal too: --reverse
// never separates a directory from the top of the listing).
func partitionDirsFirst(entries []*entry.Entry) {
	dirs := make([]*entry.Entry, 0, len(entries))
	rest := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			rest = append(rest, e)
		}
	}
	copy(entries, dirs)
	copy(entries[len(dirs):], rest)
}
