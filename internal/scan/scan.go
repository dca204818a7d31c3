// Package scan implements the directory-tree walker described in spec.md
// §4.3. ScanDir enumerates and filters a single directory; the batch and
// streaming drivers in this package compose it into a full walk, in batch
// mode by fanning directories out to a bounded worker pool, in streaming
// mode by a single recursive depth-first descent.
package scan

import (
	"errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/clarkmcc/treepp/internal/config"
	"github.com/clarkmcc/treepp/internal/entry"
	"github.com/clarkmcc/treepp/internal/gitignore"
)

// Scanner abstracts "scan one directory" the way BatchScan and StreamWalk
// consume it, so an alternative implementation (e.g. a platform-specific
// accelerated scanner, see spec.md §9's NTFS-MFT note) can be substituted
// without touching either driver. ScanDir is the default, POSIX-readdir-based
// implementation; DefaultScanner is what both drivers call through.
type Scanner interface {
	ScanDir(dirAbsPath, dirRelPath string, depth int, opts Options, parentChain gitignore.Chain) ([]*entry.Entry, gitignore.Chain, error)
}

// dirScanner is the Scanner backed by the package-level ScanDir function.
type dirScanner struct{}

func (dirScanner) ScanDir(dirAbsPath, dirRelPath string, depth int, opts Options, parentChain gitignore.Chain) ([]*entry.Entry, gitignore.Chain, error) {
	return ScanDir(dirAbsPath, dirRelPath, depth, opts, parentChain)
}

// DefaultScanner is the Scanner BatchScan and StreamWalk drive by default.
// Replacing it (in a test, or in a future build with an alternative
// implementation) changes how every directory in a walk gets scanned
// without changing either driver's control flow.
var DefaultScanner Scanner = dirScanner{}

// ScanDir scans one directory and returns its filtered, unordered children
// along with the gitignore chain effective for further descent into those
// children (the parent chain plus this directory's own .gitignore, if one
// exists and GitignoreEnabled is set).
//
// dirRelPath is "." for the scan root. depth is the depth of dirAbsPath
// itself (0 for the root); returned children carry depth+1.
//
// An error is returned only when dirAbsPath itself cannot be opened. Per
// spec.md §4.3, the caller decides whether that is fatal (the scan root)
// or a recoverable, logged subtree skip (anywhere else).
func ScanDir(dirAbsPath, dirRelPath string, depth int, opts Options, parentChain gitignore.Chain) ([]*entry.Entry, gitignore.Chain, error) {
	logger := config.NewLogger("scan")

	raw, err := readDirRaw(dirAbsPath)
	if err != nil {
		return nil, parentChain, err
	}

	effectiveChain := parentChain
	if opts.GitignoreEnabled {
		effectiveChain = appendGitignore(dirAbsPath, dirRelPath, parentChain, logger)
	}

	childDepth := depth + 1
	children := make([]*entry.Entry, 0, len(raw))
	for _, r := range raw {
		relPath := r.name
		if dirRelPath != "." && dirRelPath != "" {
			relPath = path.Join(dirRelPath, r.name)
		}

		if !accept(opts, r, relPath, childDepth, effectiveChain) {
			continue
		}

		children = append(children, &entry.Entry{
			Name:       r.name,
			Kind:       r.kind,
			Size:       r.size,
			ModTime:    r.modTime,
			ChangeTime: r.ctime,
			Depth:      childDepth,
		})
	}

	return children, effectiveChain, nil
}

// ShouldRecurse reports whether a directory child at childDepth should
// itself be scanned, per the level-limit rule that children of an entry at
// the limit depth are never scanned.
func ShouldRecurse(opts Options, childDepth int) bool {
	return shouldRecurse(opts, childDepth)
}

// appendGitignore reads and compiles dirAbsPath's own .gitignore, if
// present, and returns parentChain with it appended. A missing file is not
// an error; an unreadable or invalid one is logged as a warning and the
// chain is returned unchanged, per the gitignore engine's failure
// semantics (spec.md §4.2).
func appendGitignore(dirAbsPath, dirRelPath string, parentChain gitignore.Chain, logger *slog.Logger) gitignore.Chain {
	data, err := os.ReadFile(filepath.Join(dirAbsPath, ".gitignore"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("unreadable .gitignore, treating as empty", "dir", dirAbsPath, "error", err)
		}
		return parentChain
	}

	rules, err := gitignore.Parse(data, dirRelPath)
	if err != nil {
		logger.Warn("invalid .gitignore, treating as empty", "dir", dirAbsPath, "error", err)
		return parentChain
	}

	return parentChain.Append(dirRelPath, rules)
}
