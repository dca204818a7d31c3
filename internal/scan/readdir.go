package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clarkmcc/treepp/internal/config"
	"github.com/clarkmcc/treepp/internal/entry"
)

// rawEntry is the pre-filter record produced by reading one directory entry's
// metadata, before any of the scanner's filter steps are applied.
type rawEntry struct {
	name    string
	kind    entry.Kind
	size    int64
	modTime time.Time
	ctime   time.Time
}

// readDirRaw enumerates one directory and stats every entry. Per spec.md
// §4.3 step 1, an entry whose metadata cannot be read is logged as a
// warning and dropped; it never aborts the scan of its siblings. Symlinks
// and special files are not followed -- Lstat is used so a symlink's own
// metadata is reported, and it is classified as entry.Other.
//
// A failure to open dirAbsPath itself (it does not exist, or is not
// readable) is returned to the caller, which decides whether that is fatal
// (the scan root) or a recoverable, logged subtree skip (anywhere else).
func readDirRaw(dirAbsPath string) ([]rawEntry, error) {
	names, err := os.ReadDir(dirAbsPath)
	if err != nil {
		return nil, fmt.Errorf("scan: reading directory %s: %w", dirAbsPath, err)
	}

	logger := config.NewLogger("scan")

	raw := make([]rawEntry, 0, len(names))
	for _, d := range names {
		full := filepath.Join(dirAbsPath, d.Name())
		info, serr := os.Lstat(full)
		if serr != nil {
			logger.Warn("stat failed, skipping entry", "path", full, "error", serr)
			continue
		}

		kind := entry.File
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			kind = entry.Other
		case info.IsDir():
			kind = entry.Directory
		case !info.Mode().IsRegular():
			kind = entry.Other
		}

		raw = append(raw, rawEntry{
			name:    d.Name(),
			kind:    kind,
			size:    info.Size(),
			modTime: info.ModTime(),
			ctime:   changeTime(info),
		})
	}

	return raw, nil
}
