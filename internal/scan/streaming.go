package scan

import (
	"path"
	"path/filepath"

	"github.com/clarkmcc/treepp/internal/config"
	"github.com/clarkmcc/treepp/internal/entry"
	"github.com/clarkmcc/treepp/internal/gitignore"
)

// Visitor is called once per directory during a StreamWalk, with that
// directory's unsorted, filtered children. Implementations are expected to
// sort and render the children (and, for directories, emit their line)
// before StreamWalk recurses into any of them -- this is what makes
// streaming mode "emit as you scan" rather than a two-pass walk.
type Visitor func(dir *entry.Entry, children []*entry.Entry) error

// StreamWalk performs the single-producer, depth-first walk described in
// spec.md §4.3/§4.8 for streaming mode. It never materializes more of the
// tree than the current path stack: only one Visitor call's worth of
// children is alive at a time, plus the ancestor chain needed to resume
// recursion.
//
// A failure to open rootAbsPath is fatal and returned to the caller.
// Failures deeper in the tree are logged as warnings and treated as an
// empty subtree, matching the scanner's recoverable-error semantics.
func StreamWalk(rootAbsPath, rootName string, opts Options, visit Visitor) error {
	root := &entry.Entry{Name: rootName, Kind: entry.Directory, Depth: 0}
	return streamRecurse(rootAbsPath, ".", root, opts, gitignore.Chain{}, visit)
}

func streamRecurse(absPath, relPath string, dir *entry.Entry, opts Options, chain gitignore.Chain, visit Visitor) error {
	children, childChain, err := DefaultScanner.ScanDir(absPath, relPath, dir.Depth, opts, chain)
	if err != nil {
		if dir.Depth == 0 {
			return err
		}
		config.NewLogger("scan").Warn("skipping unreadable subtree", "path", absPath, "error", err)
		return nil
	}

	if err := visit(dir, children); err != nil {
		return err
	}

	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		if !ShouldRecurse(opts, child.Depth) {
			continue
		}

		childAbs := filepath.Join(absPath, child.Name)
		childRel := child.Name
		if relPath != "." {
			childRel = path.Join(relPath, child.Name)
		}

		if err := streamRecurse(childAbs, childRel, child, opts, childChain, visit); err != nil {
			return err
		}
	}

	return nil
}
