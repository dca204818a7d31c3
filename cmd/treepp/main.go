// Package main is the entry point for the treepp CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/clarkmcc/treepp/internal/buildinfo"
	"github.com/clarkmcc/treepp/internal/cliargs"
	"github.com/clarkmcc/treepp/internal/config"
	"github.com/clarkmcc/treepp/internal/treepipeline"
)

const usage = `treepp [options] [<path>]

Print a directory tree, GNU/POSIX/CMD dialects all accepted.

  -a, --ascii             ASCII glyphs instead of Unicode
  -f, --files             include files, not just directories
  -p, --full-path         render the full path for each entry
  -H, --human-readable    binary-prefixed sizes (implies --size)
  -i, --no-indent         two-space levels, no branch glyphs
  -r, --reverse           invert the final sibling order
      --dirs-first        stable partition placing directories first
  -s, --size              show byte sizes
  -d, --date              show modification timestamps
  -I, --exclude <glob>    exclude glob pattern (repeatable)
  -m, --include <glob>    include glob pattern (repeatable)
  -L, --level <n>         depth limit
  -u, --disk-usage        cumulative directory sizes (implies --size, forces batch)
  -e, --report            emit the summary footer line
  -P, --prune             omit directories with no visible files (forces batch)
  -b, --batch             materialize the full tree before rendering
  -t, --thread <n>        worker thread count (forces batch)
  -g, --gitignore         honor .gitignore files
  -N, --no-win-banner     suppress the native banner
  -l, --silent            suppress stdout output (requires --output)
  -o, --output <file>     output file (.txt/.json/.yml/.yaml/.toml)
      --verbose           raise the log level to debug
  -h, --help              show this message
  -v, --version           show version information
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	result, err := cliargs.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, usage)
		return int(treepipeline.ExitConfigError)
	}

	if result.Help {
		fmt.Fprint(stdout, usage)
		return int(treepipeline.ExitSuccess)
	}
	if result.Version {
		fmt.Fprintf(stdout, "treepp %s (commit %s, built %s, %s)\n",
			buildinfo.Version, buildinfo.Commit, buildinfo.Date, buildinfo.GoVersion)
		return int(treepipeline.ExitSuccess)
	}

	cfg := result.Config
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return int(treepipeline.ExitConfigError)
	}

	level := config.ResolveLogLevel(cfg.Verbose)
	format := config.ResolveLogFormat()
	config.SetupLogging(level, format)
	slog.Debug("logging initialized", "level", level, "format", format)

	if err := treepipeline.Run(context.Background(), cfg, stdout); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(treepipeline.ExitSuccess)
}

// extractExitCode determines the process exit code from an error. If the
// error is a *treepipeline.TreeppError, its Code field is used; any other
// non-nil error maps to ExitConfigError.
func extractExitCode(err error) int {
	var te *treepipeline.TreeppError
	if errors.As(err, &te) {
		return int(te.Code)
	}
	return int(treepipeline.ExitConfigError)
}
