//go:build windows

package scan

import (
	"os"
	"syscall"
	"time"
)

// changeTime substitutes NTFS's creation time for ctime: Windows has no
// POSIX-style inode change time, and the file's creation timestamp is the
// closest analogue available from os.FileInfo.Sys().
func changeTime(info os.FileInfo) time.Time {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(0, attrs.CreationTime.Nanoseconds())
}
