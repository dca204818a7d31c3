package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarkmcc/treepp/internal/treepipeline"
)

func TestRun_HelpPrintsUsageAndExitsZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--help"}, &stdout, &stderr)

	assert.Equal(t, int(treepipeline.ExitSuccess), code)
	assert.Contains(t, stdout.String(), "treepp [options]")
	assert.Empty(t, stderr.String())
}

func TestRun_VersionPrintsBuildInfo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--version"}, &stdout, &stderr)

	assert.Equal(t, int(treepipeline.ExitSuccess), code)
	assert.Contains(t, stdout.String(), "treepp")
}

func TestRun_UnknownFlagExitsConfigError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--not-a-real-flag"}, &stdout, &stderr)

	assert.Equal(t, int(treepipeline.ExitConfigError), code)
	assert.NotEmpty(t, stderr.String())
}

func TestRun_SilentWithoutOutputExitsConfigError(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"--silent", dir}, &stdout, &stderr)

	assert.Equal(t, int(treepipeline.ExitConfigError), code)
}

func TestRun_MissingRootExitsScanError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-win-banner", missing}, &stdout, &stderr)

	assert.Equal(t, int(treepipeline.ExitScanError), code)
}

func TestRun_SuccessfulScanExitsZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-win-banner", "--files", dir}, &stdout, &stderr)

	assert.Equal(t, int(treepipeline.ExitSuccess), code)
	assert.Contains(t, stdout.String(), "a.txt")
	assert.Empty(t, stderr.String())
}
