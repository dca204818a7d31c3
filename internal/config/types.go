package config

import "github.com/clarkmcc/treepp/internal/serialize"

// Mode selects whether the orchestrator streams output as it scans or
// materializes the full tree before rendering (spec.md §4.8/§9). It is
// resolved once, inside Validate, and never changes afterward.
type Mode int

const (
	// ModeStreaming emits output as the walk progresses; no tree is
	// materialized beyond the current path stack. The default.
	ModeStreaming Mode = iota
	// ModeBatch fully scans the tree before any rendering begins.
	ModeBatch
)

func (m Mode) String() string {
	if m == ModeBatch {
		return "batch"
	}
	return "streaming"
}

// Config is the validated set of switches and parameters described in
// spec.md §3/§6 -- the single object the Pipeline Orchestrator consumes.
// A Config is only considered valid after a successful call to Validate,
// which also fills in Mode, Threads (default applied), and Format.
type Config struct {
	// RootPath is the directory to scan. cliargs sets it to "." when no path
	// argument was given. treepipeline.Run resolves it to an absolute path;
	// RootWasDefault records which case applied so the orchestrator can
	// format the display root per spec.md §3.
	RootPath       string
	RootWasDefault bool

	// --ascii / -a / /A: ASCII glyph set instead of the Unicode default.
	ASCII bool
	// --files / -f / /F: include files, not just directories.
	ShowFiles bool
	// --full-path / -p / /FP: render the full path instead of the bare name.
	FullPath bool
	// --human-readable / -H / /HR: binary-prefixed sizes. Implies ShowSize.
	HumanReadable bool
	// --no-indent / -i / /NI: two-space levels, no branch glyphs.
	NoIndent bool
	// --reverse / -r / /R: invert the final sibling order.
	Reverse bool
	// --size / -s / /S: show byte sizes.
	ShowSize bool
	// --date / -d / /DT: show modification timestamps.
	ShowDate bool
	// --dirs-first: stable partition placing directories before files,
	// applied after sorting and reversal (spec.md §4.4, §9).
	DirsFirst bool

	// --exclude / -I / /X: repeatable exclude glob patterns.
	Exclude []string
	// --include / -m / /M: repeatable include glob patterns.
	Include []string

	// --level / -L / /L: depth limit. -1 means unlimited (the default).
	LevelLimit int

	// --disk-usage / -u / /DU: cumulative directory sizes. Implies ShowSize
	// and forces batch mode.
	DiskUsage bool
	// --report / -e / /RP: emit the summary footer line.
	Report bool
	// --prune / -P / /P: omit directories with no visible files. Forces
	// batch mode (pruning requires lookahead).
	Prune bool
	// --no-win-banner / -N / /NB: suppress the two-line native banner.
	NoBanner bool
	// --silent / -l / /SI: suppress the stdout leg. Requires Output.
	Silent bool
	// --output / -o / /O: path ending in .txt/.json/.yml/.yaml/.toml.
	Output string
	// --batch / -b / /B: explicit batch-mode request.
	Batch bool
	// --thread / -t / /T: worker count. ThreadsSet distinguishes "user
	// supplied --thread" (which forces batch mode regardless of value)
	// from "not supplied" (default applied, no mode trigger).
	Threads    int
	ThreadsSet bool
	// --gitignore / -g / /G: honor .gitignore files while scanning.
	Gitignore bool

	// --verbose: raises the log level to debug (ambient, not in spec.md's
	// option table; wired for operational logging per the AMBIENT STACK).
	Verbose bool

	// Mode, Format are resolved by Validate and are read-only facts from
	// that point on (spec.md §9: "mode selection as an internal fact, not
	// a user choice").
	Mode   Mode
	Format serialize.Format
}
