// Package aggregate computes the disk-usage roll-up and summary counters
// described in spec.md §4.6: a depth-first walk of an already-materialized
// batch tree that fills in each directory's DiskUsage and produces the
// totals needed for the --report footer.
package aggregate

import "github.com/clarkmcc/treepp/internal/entry"

// Totals holds the counters needed for the renderer's summary footer.
// Directories does not count the root itself, matching the legacy tool's
// report line, which counts subdirectories only.
type Totals struct {
	Directories int
	Files       int
}

// Walk computes DiskUsage for every directory in root's subtree and
// returns the directory/file counts across the whole subtree.
//
// Walk mutates root in place: DiskUsage is the only field the Aggregator
// is permitted to fill in after scanning, per the Entry lifecycle described
// in spec.md §3.
func Walk(root *entry.Entry) Totals {
	var totals Totals
	walkDir(root, &totals, false)
	return totals
}

// Count returns the directory/file totals for root's subtree without
// touching DiskUsage. Used when --report is requested without
// --disk-usage: the spec's Entry invariant says DiskUsage is "only
// populated in batch mode with /DU", so the counter-totals half of the
// Aggregator's job must be reachable on its own.
func Count(root *entry.Entry) Totals {
	var totals Totals
	countDir(root, &totals, false)
	return totals
}

func countDir(e *entry.Entry, totals *Totals, countSelf bool) {
	if countSelf {
		if e.IsDir() {
			totals.Directories++
		} else {
			totals.Files++
		}
	}
	for _, child := range e.Children {
		countDir(child, totals, true)
	}
}

// walkDir computes e's DiskUsage and returns it, recording counts into
// totals along the way. countSelf is false only for the root call, since
// the root is the subject of the walk rather than one of its own
// descendants.
func walkDir(e *entry.Entry, totals *Totals, countSelf bool) int64 {
	if countSelf {
		if e.IsDir() {
			totals.Directories++
		} else {
			totals.Files++
		}
	}

	if !e.IsDir() {
		return e.Size
	}

	var sum int64
	for _, child := range e.Children {
		sum += walkDir(child, totals, true)
	}
	e.DiskUsage = sum
	return sum
}
