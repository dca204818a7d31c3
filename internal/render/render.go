// Package render turns a (possibly partial) scanned tree into printable
// lines, per spec.md §4.5: glyph selection, per-parent metadata column
// alignment, pruning, and the header/footer lines that frame the tree body.
package render

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/clarkmcc/treepp/internal/aggregate"
	"github.com/clarkmcc/treepp/internal/entry"
)

// Style selects the glyph set used for indentation and branch connectors.
type Style int

const (
	Unicode Style = iota
	ASCII
	NoIndent
)

type glyphs struct {
	interior      string
	last          string
	vertical      string
	empty         string
	fileConnector string
}

var glyphsByStyle = map[Style]glyphs{
	Unicode: {
		interior:      "├─",
		last:          "└─",
		vertical:      "│  ",
		empty:         "   ",
		fileConnector: "    ",
	},
	ASCII: {
		interior:      "+---",
		last:          "\\---",
		vertical:      "|   ",
		empty:         "    ",
		fileConnector: "    ",
	},
}

// Options controls how Lines renders one tree or one directory's children.
type Options struct {
	Style         Style
	FullPath      bool
	ShowSize      bool
	HumanReadable bool
	ShowDate      bool
}

// Prune recursively marks IsPruned on every directory in e's subtree whose
// subtree contains no file entries, per spec.md §4.5. It returns whether e
// itself is visible (a file is always visible; a directory is visible iff
// at least one descendant file is visible).
func Prune(e *entry.Entry) bool {
	if !e.IsDir() {
		return true
	}

	visible := false
	for _, child := range e.Children {
		if Prune(child) {
			visible = true
		}
	}
	e.IsPruned = !visible
	return visible
}

// Lines renders root's entire subtree (batch mode), excluding the header
// line for root itself -- callers combine this with Header separately.
func Lines(root *entry.Entry, opts Options) []string {
	var out []string
	appendChildren(&out, root, nil, root.Name, opts)
	return out
}

// Children renders exactly one directory's immediate children, given the
// stack of ancestor "is this ancestor the last sibling at its level"
// flags. This is the entry point streaming mode uses, one directory at a
// time, since it never materializes the whole tree.
func Children(dir *entry.Entry, ancestorIsLast []bool, dirPath string, opts Options) []string {
	var out []string
	appendChildren(&out, dir, ancestorIsLast, dirPath, opts)
	return out
}

func appendChildren(out *[]string, dir *entry.Entry, ancestorIsLast []bool, dirPath string, opts Options) {
	visible := visibleChildren(dir.Children)
	if len(visible) == 0 {
		return
	}

	g := styleGlyphs(opts.Style)
	prefix := buildPrefix(g, opts.Style, ancestorIsLast)

	namePrefixes := make([]string, len(visible))
	for i, child := range visible {
		isLast := i == len(visible)-1
		connector := connectorFor(g, opts.Style, isLast, !child.IsDir())
		namePrefixes[i] = prefix + connector + displayName(child, dirPath, opts)
	}

	maxWidth := 0
	for _, np := range namePrefixes {
		if w := utf8.RuneCountInString(np); w > maxWidth {
			maxWidth = w
		}
	}

	for i, child := range visible {
		line := namePrefixes[i]
		if meta := formatMetadata(child, opts); meta != "" {
			line += strings.Repeat(" ", maxWidth-utf8.RuneCountInString(namePrefixes[i])+1) + meta
		}
		*out = append(*out, line)

		if child.IsDir() {
			isLast := i == len(visible)-1
			childAncestor := append(append([]bool{}, ancestorIsLast...), isLast)
			childPath := path.Join(dirPath, child.Name)
			appendChildren(out, child, childAncestor, childPath, opts)
		}
	}
}

func visibleChildren(children []*entry.Entry) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(children))
	for _, c := range children {
		if !c.IsPruned {
			out = append(out, c)
		}
	}
	return out
}

func styleGlyphs(style Style) glyphs {
	if g, ok := glyphsByStyle[style]; ok {
		return g
	}
	return glyphs{}
}

func buildPrefix(g glyphs, style Style, ancestorIsLast []bool) string {
	if style == NoIndent {
		return strings.Repeat("  ", len(ancestorIsLast))
	}
	var b strings.Builder
	for _, last := range ancestorIsLast {
		if last {
			b.WriteString(g.empty)
		} else {
			b.WriteString(g.vertical)
		}
	}
	return b.String()
}

func connectorFor(g glyphs, style Style, isLast, isFile bool) string {
	if style == NoIndent {
		if isFile {
			return "  "
		}
		return ""
	}
	if isFile {
		return g.fileConnector
	}
	if isLast {
		return g.last
	}
	return g.interior
}

func displayName(e *entry.Entry, dirPath string, opts Options) string {
	name := e.Name
	if opts.FullPath {
		name = path.Join(dirPath, e.Name)
	}
	if strings.ContainsRune(name, ' ') {
		return `"` + name + `"`
	}
	return name
}

func formatMetadata(e *entry.Entry, opts Options) string {
	var parts []string
	if opts.ShowSize {
		parts = append(parts, FormatSize(e.EffectiveSize(), opts.HumanReadable))
	}
	if opts.ShowDate {
		parts = append(parts, FormatDate(e.ModTime))
	}
	return strings.Join(parts, "  ")
}

// FormatSize renders a byte count per spec.md §4.5: a bare integer, or
// (when human is true) binary-prefixed with one decimal place for every
// unit beyond bytes. Zero always renders as "0 B".
func FormatSize(bytes int64, human bool) string {
	if !human {
		return strconv.FormatInt(bytes, 10)
	}
	if bytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", int64(value), units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}

// FormatDate renders a timestamp per spec.md §4.5: YYYY-MM-DD HH:MM:SS in
// local time.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// Header assembles the lines that precede the tree body: the (optional)
// two-line native banner, followed by the display root line.
func Header(bannerLines []string, suppressBanner bool, rootDisplayName string) []string {
	var lines []string
	if !suppressBanner {
		lines = append(lines, bannerLines...)
	}
	return append(lines, rootDisplayName)
}

// Footer renders the --report summary line: "N directory(ies), M file(s)
// in X.XXXs", pluralized per spec.md §4.5.
func Footer(totals aggregate.Totals, elapsed time.Duration) string {
	return fmt.Sprintf("%d %s, %d %s in %.3fs",
		totals.Directories, pluralize(totals.Directories, "directory", "directories"),
		totals.Files, pluralize(totals.Files, "file", "files"),
		elapsed.Seconds())
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
