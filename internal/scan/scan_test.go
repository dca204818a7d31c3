package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarkmcc/treepp/internal/entry"
	"github.com/clarkmcc/treepp/internal/gitignore"
	"github.com/clarkmcc/treepp/internal/patternmatch"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for relPath, content := range files {
		full := filepath.Join(root, filepath.FromSlash(relPath))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func namesOf(entries []*entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	sort.Strings(out)
	return out
}

func defaultOpts() Options {
	return Options{ShowFiles: true, LevelLimit: -1}
}

func TestScanDir_BasicListing(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.txt":   "x",
		"sub/b.go": "y",
	})

	children, _, err := ScanDir(root, ".", 0, defaultOpts(), gitignore.Chain{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.txt", "sub"}, namesOf(children))
}

func TestScanDir_FilesOff(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.txt":    "x",
		"sub/b.go": "y",
	})

	opts := defaultOpts()
	opts.ShowFiles = false

	children, _, err := ScanDir(root, ".", 0, opts, gitignore.Chain{})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub"}, namesOf(children))
}

func TestScanDir_ExcludePattern(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.txt": "x",
		"a.bak": "y",
	})

	m, err := patternmatch.Compile("*.bak", false)
	require.NoError(t, err)

	opts := defaultOpts()
	opts.Exclude = []*patternmatch.Matcher{m}

	children, _, err := ScanDir(root, ".", 0, opts, gitignore.Chain{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, namesOf(children))
}

func TestScanDir_IncludePatternsAreOr(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.md":  "x",
		"b.rs":  "y",
		"c.txt": "z",
	})

	md, err := patternmatch.Compile("*.md", false)
	require.NoError(t, err)
	txt, err := patternmatch.Compile("*.txt", false)
	require.NoError(t, err)

	opts := defaultOpts()
	opts.Include = []*patternmatch.Matcher{md, txt}

	children, _, err := ScanDir(root, ".", 0, opts, gitignore.Chain{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.md", "c.txt"}, namesOf(children))
}

func TestScanDir_IncludeAlwaysPassesDirectories(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"sub/c.txt": "z",
	})

	only, err := patternmatch.Compile("*.md", false)
	require.NoError(t, err)

	opts := defaultOpts()
	opts.Include = []*patternmatch.Matcher{only}

	children, _, err := ScanDir(root, ".", 0, opts, gitignore.Chain{})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub"}, namesOf(children))
}

func TestScanDir_LevelLimit(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a/b/c.txt": "z",
	})

	opts := defaultOpts()
	opts.LevelLimit = 1

	// depth 0 scan yields "a" at depth 1: retained (1 <= 1).
	children, _, err := ScanDir(root, ".", 0, opts, gitignore.Chain{})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "a", children[0].Name)

	// Recursing into "a" should be refused: its children sit at depth 2 > 1.
	assert.False(t, ShouldRecurse(opts, children[0].Depth))
}

func TestStreamWalk_VisitsEveryDirectory(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.txt":      "x",
		"sub/b.txt":  "y",
		"sub/nested/c.txt": "z",
	})

	var visited []string
	err := StreamWalk(root, "X:.", defaultOpts(), func(dir *entry.Entry, children []*entry.Entry) error {
		visited = append(visited, dir.Name)
		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"X:.", "sub", "nested"}, visited)
}

func TestStreamWalk_RootUnreadableIsFatal(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "does-not-exist")

	err := StreamWalk(missing, "X:.", defaultOpts(), func(dir *entry.Entry, children []*entry.Entry) error {
		return nil
	})
	assert.Error(t, err)
}

func TestBatchScan_BuildsFullTree(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.txt":            "x",
		"sub/b.txt":        "y",
		"sub/nested/c.txt": "z",
	})

	tree, err := BatchScan(context.Background(), root, "X:.", defaultOpts(), 4)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.txt", "sub"}, namesOf(tree.Children))

	var sub *entry.Entry
	for _, c := range tree.Children {
		if c.Name == "sub" {
			sub = c
		}
	}
	require.NotNil(t, sub)
	assert.ElementsMatch(t, []string{"b.txt", "nested"}, namesOf(sub.Children))
}

func TestBatchScan_DeterministicAcrossThreadCounts(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.txt":     "x",
		"b/c.txt":   "y",
		"b/d.txt":   "y",
		"e/f/g.txt": "z",
	})

	one, err := BatchScan(context.Background(), root, "X:.", defaultOpts(), 1)
	require.NoError(t, err)
	many, err := BatchScan(context.Background(), root, "X:.", defaultOpts(), 8)
	require.NoError(t, err)

	assert.Equal(t, collectNames(one), collectNames(many))
}

// collectNames flattens a tree into a sorted multiset of every entry name,
// used to compare two scans regardless of non-deterministic insertion order
// (ordering is the Sorter's job, not the Scanner's).
func collectNames(root *entry.Entry) []string {
	var out []string
	var walk func(e *entry.Entry)
	walk = func(e *entry.Entry) {
		out = append(out, e.Name)
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(root)
	sort.Strings(out)
	return out
}
