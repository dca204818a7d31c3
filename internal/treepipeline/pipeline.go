package treepipeline

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/clarkmcc/treepp/internal/aggregate"
	"github.com/clarkmcc/treepp/internal/banner"
	"github.com/clarkmcc/treepp/internal/config"
	"github.com/clarkmcc/treepp/internal/entry"
	"github.com/clarkmcc/treepp/internal/ordering"
	"github.com/clarkmcc/treepp/internal/patternmatch"
	"github.com/clarkmcc/treepp/internal/render"
	"github.com/clarkmcc/treepp/internal/scan"
	"github.com/clarkmcc/treepp/internal/serialize"
	"github.com/clarkmcc/treepp/internal/sink"
)

// Run sequences scan -> sort -> render -> emit under whichever mode
// cfg.Mode already resolved (config.Validate must have run first), per
// spec.md §4.8. It is the single entry point cmd/treepp calls.
func Run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	start := time.Now()
	logger := config.NewLogger("treepipeline")

	absRoot, err := filepath.Abs(cfg.RootPath)
	if err != nil {
		return NewScanError("resolving root path", err)
	}
	displayRoot := displayRootName(absRoot, cfg.RootWasDefault)

	opts, err := buildScanOptions(cfg)
	if err != nil {
		return NewConfigError("compiling pattern filters", err)
	}

	sortOpts := ordering.Options{Key: ordering.ByName, Reverse: cfg.Reverse, DirsFirst: cfg.DirsFirst}
	renderOpts := render.Options{
		Style:         glyphStyle(cfg),
		FullPath:      cfg.FullPath,
		ShowSize:      cfg.ShowSize,
		HumanReadable: cfg.HumanReadable,
		ShowDate:      cfg.ShowDate,
	}

	var bannerLines []string
	if !cfg.NoBanner {
		bannerLines = banner.Capture()
	}

	s := sink.New(stdout, cfg.Silent)
	if cfg.Output != "" {
		if err := s.AttachFile(cfg.Output); err != nil {
			return NewOutputError("opening output file", err)
		}
	}

	var totals aggregate.Totals
	if cfg.Mode == config.ModeBatch {
		totals, err = runBatch(ctx, absRoot, displayRoot, opts, sortOpts, renderOpts, cfg, s, bannerLines)
	} else {
		totals, err = runStreaming(absRoot, displayRoot, opts, sortOpts, renderOpts, cfg, s, bannerLines)
	}
	if err != nil {
		_ = s.Close()
		return err
	}

	if cfg.Report {
		elapsed := time.Since(start)
		if werr := s.WriteStdoutLine(render.Footer(totals, elapsed)); werr != nil {
			logger.Warn("stdout write failed, ignoring", "error", werr)
		}
	}

	if err := s.Close(); err != nil {
		return NewOutputError("writing output file", err)
	}
	return nil
}

// runBatch implements spec.md §4.8's batch data flow: scan the whole tree
// via the worker pool, sort every directory's children, prune (if
// requested), aggregate, render, and emit.
func runBatch(ctx context.Context, absRoot, displayRoot string, opts scan.Options, sortOpts ordering.Options, renderOpts render.Options, cfg *config.Config, s *sink.Sink, bannerLines []string) (aggregate.Totals, error) {
	root, err := scan.BatchScan(ctx, absRoot, displayRoot, opts, cfg.Threads)
	if err != nil {
		return aggregate.Totals{}, NewScanError("scanning root", err)
	}

	sortTree(root, sortOpts)

	if cfg.Prune {
		render.Prune(root)
	}

	var totals aggregate.Totals
	switch {
	case cfg.DiskUsage:
		totals = aggregate.Walk(root)
	case cfg.Report:
		totals = aggregate.Count(root)
	}

	headerLines := render.Header(bannerLines, cfg.NoBanner, displayRoot)
	bodyLines := render.Lines(root, renderOpts)

	for _, line := range headerLines {
		_ = s.WriteStdoutLine(line)
	}
	for _, line := range bodyLines {
		_ = s.WriteStdoutLine(line)
	}

	if cfg.Output == "" {
		return totals, nil
	}

	if cfg.Format == serialize.TXT {
		var buf strings.Builder
		for _, line := range headerLines {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		for _, line := range bodyLines {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		if err := s.WriteFile([]byte(buf.String())); err != nil {
			return totals, NewOutputError("writing output file", err)
		}
		return totals, nil
	}

	data, err := serialize.Tree(root, cfg.Format)
	if err != nil {
		return totals, NewOutputError("serializing tree", err)
	}
	if err := s.WriteFile(data); err != nil {
		return totals, NewOutputError("writing output file", err)
	}
	return totals, nil
}

// streamPosition tracks the rendering context streamRecurse's external
// recursion doesn't otherwise carry: the ancestor "is this ancestor the
// last sibling" stack and the display path, both needed to render each
// directory's children as render.Children expects.
type streamPosition struct {
	ancestor []bool
	dirPath  string
}

// runStreaming implements spec.md §4.8's streaming data flow: one
// directory at a time, sort its children in place (so the scanner's own
// recursion order -- driven by the same backing array -- follows the sort
// order too), render immediately, and recurse.
func runStreaming(absRoot, displayRoot string, opts scan.Options, sortOpts ordering.Options, renderOpts render.Options, cfg *config.Config, s *sink.Sink, bannerLines []string) (aggregate.Totals, error) {
	var totals aggregate.Totals
	positions := map[*entry.Entry]streamPosition{}
	headerEmitted := false

	visit := func(dir *entry.Entry, children []*entry.Entry) error {
		sorted := ordering.Sort(children, sortOpts)
		copy(children, sorted)
		dir.Children = children

		if !headerEmitted {
			for _, line := range render.Header(bannerLines, cfg.NoBanner, displayRoot) {
				emitLine(s, cfg, line)
			}
			headerEmitted = true
		}

		pos, ok := positions[dir]
		if !ok {
			pos = streamPosition{dirPath: displayRoot}
		}

		for _, child := range children {
			if child.IsDir() {
				totals.Directories++
			} else {
				totals.Files++
			}
		}

		for _, line := range render.Children(dir, pos.ancestor, pos.dirPath, renderOpts) {
			emitLine(s, cfg, line)
		}

		for i, child := range children {
			if !child.IsDir() {
				continue
			}
			isLast := i == len(children)-1
			childStack := append(append([]bool{}, pos.ancestor...), isLast)
			positions[child] = streamPosition{ancestor: childStack, dirPath: path.Join(pos.dirPath, child.Name)}
		}

		return nil
	}

	if err := scan.StreamWalk(absRoot, displayRoot, opts, visit); err != nil {
		return totals, NewScanError("scanning root", err)
	}
	return totals, nil
}

// emitLine writes one rendered line to both sink legs: the stdout leg
// (silence-aware) and, when a plain-text output file is attached, the
// file leg too. Non-TXT structured formats never reach streaming mode --
// config.Validate forces batch mode for any of them.
func emitLine(s *sink.Sink, cfg *config.Config, line string) {
	_ = s.WriteStdoutLine(line)
	if cfg.Output != "" && cfg.Format == serialize.TXT {
		_ = s.WriteFile([]byte(line + "\n"))
	}
}

// sortTree recursively replaces every directory's Children with a sorted
// copy. Streaming mode sorts per directory as it walks; batch mode needs
// the whole materialized tree sorted before rendering, since the
// Renderer's per-parent alignment (spec.md §9) assumes siblings are
// already in final order.
func sortTree(e *entry.Entry, opts ordering.Options) {
	if !e.IsDir() {
		return
	}
	e.Children = ordering.Sort(e.Children, opts)
	for _, c := range e.Children {
		sortTree(c, opts)
	}
}

// buildScanOptions compiles cfg's --exclude/--include patterns and
// translates the remaining filter-relevant fields into scan.Options.
func buildScanOptions(cfg *config.Config) (scan.Options, error) {
	exclude, err := compilePatterns(cfg.Exclude)
	if err != nil {
		return scan.Options{}, err
	}
	include, err := compilePatterns(cfg.Include)
	if err != nil {
		return scan.Options{}, err
	}
	return scan.Options{
		ShowFiles:        cfg.ShowFiles,
		Exclude:          exclude,
		Include:          include,
		GitignoreEnabled: cfg.Gitignore,
		LevelLimit:       cfg.LevelLimit,
	}, nil
}

func compilePatterns(patterns []string) ([]*patternmatch.Matcher, error) {
	out := make([]*patternmatch.Matcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := patternmatch.Compile(p, false)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// glyphStyle picks the Renderer's glyph variant: --no-indent wins over
// --ascii if both are somehow supplied, since it replaces connectors
// entirely rather than just swapping their character set.
func glyphStyle(cfg *config.Config) render.Style {
	switch {
	case cfg.NoIndent:
		return render.NoIndent
	case cfg.ASCII:
		return render.ASCII
	default:
		return render.Unicode
	}
}

// displayRootName implements the Entry invariant from spec.md §3: "X:."
// when the path was left default, the uppercased absolute path otherwise.
func displayRootName(absPath string, wasDefault bool) string {
	if wasDefault {
		return "X:."
	}
	return strings.ToUpper(absPath)
}
