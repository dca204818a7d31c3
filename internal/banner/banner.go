// Package banner captures the two-line native-tree header spec.md §1/§6.4
// describes as an external collaborator: "the native-tree banner capture
// (an external process invocation producing two lines of locale-dependent
// text); the core accepts these as an opaque string or a flag to omit
// them." This package is that capture.
//
// Invocation uses os/exec, stdlib -- no pack library wraps arbitrary
// external binary invocation for this narrow one-shot use, and introducing
// one would add a dependency with no other use site (see DESIGN.md).
package banner

import (
	"bytes"
	"os"
	"os/exec"
	"runtime"
)

// placeholder is the locale-agnostic two-line header used whenever the
// native tree binary cannot be invoked: missing, non-zero exit, or (in
// practice, since this repository's own tests run on non-Windows hosts)
// simply not present on the host at all.
var placeholder = []string{
	"Folder PATH listing",
	"Volume serial number is 0000-0000",
}

// Capture invokes the platform's native "tree" binary against a synthetic
// empty temporary subdirectory and returns its first two output lines. Any
// failure -- the host is not Windows, the binary is missing, exits non-zero,
// or produces fewer than two lines -- falls back to the locale-agnostic
// placeholder rather than propagating an error, per spec.md §6.4: this is
// never a fatal path.
func Capture() []string {
	if runtime.GOOS != "windows" {
		return placeholder
	}

	dir, err := os.MkdirTemp("", "treepp-banner-*")
	if err != nil {
		return placeholder
	}
	defer os.RemoveAll(dir)

	path, err := exec.LookPath("tree")
	if err != nil {
		return placeholder
	}

	cmd := exec.Command(path, dir)
	out, err := cmd.Output()
	if err != nil {
		return placeholder
	}

	lines := splitLines(out)
	if len(lines) < 2 {
		return placeholder
	}
	return lines[:2]
}

func splitLines(out []byte) []string {
	out = bytes.TrimRight(out, "\n")
	if len(out) == 0 {
		return nil
	}
	var lines []string
	for _, part := range bytes.Split(out, []byte("\n")) {
		lines = append(lines, string(part))
	}
	return lines
}

// Empty is a convenience for --no-win-banner: no lines, nothing captured.
func Empty() []string {
	return nil
}
