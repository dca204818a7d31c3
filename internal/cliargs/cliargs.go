// Package cliargs parses the three CLI syntax dialects spec.md §6 accepts
// in the same invocation -- GNU --long-name, POSIX -x, and CMD /X
// (case-insensitive) -- into a config.Config for config.Validate. This package is
// the explicitly out-of-scope external collaborator spec.md §1 names: "the
// core consumes a validated configuration object." It is tested for its
// translation contract (dialect -> config.Config), not exhaustively.
//
// CMD-dialect tokens are rewritten to their GNU long-flag equivalent by a
// small pre-pass before the argument list reaches pflag, which already
// tokenizes --long and -short the way the spec needs; no pack library
// parses CMD-style switches, so that pre-pass is hand-rolled.
package cliargs

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/clarkmcc/treepp/internal/config"
)

// cmdAliases maps a CMD-dialect token (lowercased, without its leading
// "/") to the GNU long flag it is equivalent to, per spec.md §6's option
// table. A slash-prefixed argument that is not in this table is left
// untouched by the pre-pass -- on POSIX hosts an absolute root path such
// as "/tmp/e" also begins with "/", and must reach the positional-argument
// collection unchanged rather than be mistaken for an unrecognized switch.
var cmdAliases = map[string]string{
	"?":  "--help",
	"v":  "--version",
	"b":  "--batch",
	"a":  "--ascii",
	"f":  "--files",
	"fp": "--full-path",
	"hr": "--human-readable",
	"ni": "--no-indent",
	"r":  "--reverse",
	"s":  "--size",
	"dt": "--date",
	"x":  "--exclude",
	"l":  "--level",
	"m":  "--include",
	"du": "--disk-usage",
	"rp": "--report",
	"p":  "--prune",
	"nb": "--no-win-banner",
	"si": "--silent",
	"o":  "--output",
	"t":  "--thread",
	"g":  "--gitignore",
}

// ParseResult is what Parse produces: either a request for help/version
// text (printing and exit-code plumbing are main's job, per spec.md §1's
// Out of scope list), or a config.Config ready for config.Validate.
type ParseResult struct {
	Help    bool
	Version bool
	Config  *config.Config
}

// Parse translates args (normally os.Args[1:]) into a ParseResult. It does
// not call config.Validate; callers do that separately so that
// configuration errors and argument-parsing errors can be told apart if a
// caller ever needs to (spec.md §7 treats both as exit code 1, so cmd/treepp
// does not distinguish them in practice).
func Parse(args []string) (*ParseResult, error) {
	translated := make([]string, len(args))
	for i, a := range args {
		translated[i] = translateCmdToken(a)
	}

	fs := pflag.NewFlagSet("treepp", pflag.ContinueOnError)
	fs.Usage = func() {}

	cfg := &config.Config{LevelLimit: -1}
	result := &ParseResult{Config: cfg}

	fs.BoolVarP(&result.Help, "help", "h", false, "show usage")
	fs.BoolVarP(&result.Version, "version", "v", false, "show version")
	fs.BoolVarP(&cfg.Batch, "batch", "b", false, "materialize the full tree before rendering")
	fs.BoolVarP(&cfg.ASCII, "ascii", "a", false, "use ASCII glyphs instead of Unicode")
	fs.BoolVarP(&cfg.ShowFiles, "files", "f", false, "include files, not just directories")
	fs.BoolVarP(&cfg.FullPath, "full-path", "p", false, "render the full path for each entry")
	fs.BoolVarP(&cfg.HumanReadable, "human-readable", "H", false, "binary-prefixed sizes (implies --size)")
	fs.BoolVarP(&cfg.NoIndent, "no-indent", "i", false, "two-space levels, no branch glyphs")
	fs.BoolVarP(&cfg.Reverse, "reverse", "r", false, "invert the final sibling order")
	fs.BoolVarP(&cfg.ShowSize, "size", "s", false, "show byte sizes")
	fs.BoolVarP(&cfg.ShowDate, "date", "d", false, "show modification timestamps")
	fs.BoolVar(&cfg.DirsFirst, "dirs-first", false, "stable partition placing directories first")
	fs.StringArrayVarP(&cfg.Exclude, "exclude", "I", nil, "exclude glob pattern (repeatable)")
	fs.StringArrayVarP(&cfg.Include, "include", "m", nil, "include glob pattern (repeatable)")
	fs.IntVarP(&cfg.LevelLimit, "level", "L", -1, "depth limit")
	fs.BoolVarP(&cfg.DiskUsage, "disk-usage", "u", false, "cumulative directory sizes (implies --size, forces batch)")
	fs.BoolVarP(&cfg.Report, "report", "e", false, "emit the summary footer line")
	fs.BoolVarP(&cfg.Prune, "prune", "P", false, "omit directories with no visible files (forces batch)")
	fs.BoolVarP(&cfg.NoBanner, "no-win-banner", "N", false, "suppress the native banner")
	fs.BoolVarP(&cfg.Silent, "silent", "l", false, "suppress stdout output (requires --output)")
	fs.StringVarP(&cfg.Output, "output", "o", "", "output file (.txt/.json/.yml/.yaml/.toml)")
	fs.IntVarP(&cfg.Threads, "thread", "t", 0, "worker thread count (forces batch)")
	fs.BoolVarP(&cfg.Gitignore, "gitignore", "g", false, "honor .gitignore files")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "raise the log level to debug")

	if err := fs.Parse(translated); err != nil {
		return nil, err
	}

	cfg.ThreadsSet = fs.Changed("thread")

	if result.Help || result.Version {
		return result, nil
	}

	if fs.Changed("level") && cfg.LevelLimit < 0 {
		return nil, fmt.Errorf("cliargs: --level must be a non-negative integer, got %d", cfg.LevelLimit)
	}

	positional := fs.Args()
	if len(positional) > 1 {
		return nil, fmt.Errorf("cliargs: at most one root path argument is accepted, got %d", len(positional))
	}
	if len(positional) == 1 {
		cfg.RootPath = positional[0]
		cfg.RootWasDefault = false
	} else {
		cfg.RootPath = "."
		cfg.RootWasDefault = true
	}

	return result, nil
}

// translateCmdToken rewrites a single CMD-dialect token ("/X") to its GNU
// long-flag equivalent when it matches a known option, leaving every other
// token (including an unrecognized "/..." token, which is assumed to be a
// POSIX-style root path) unchanged.
func translateCmdToken(token string) string {
	if !strings.HasPrefix(token, "/") || len(token) < 2 {
		return token
	}
	key := strings.ToLower(token[1:])
	if long, ok := cmdAliases[key]; ok {
		return long
	}
	return token
}
