package patternmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := Compile("[abc", false)
	require.Error(t, err)
}

func TestMatcher_Star(t *testing.T) {
	t.Parallel()

	m, err := Compile("*.go", false)
	require.NoError(t, err)

	assert.True(t, m.Matches("main.go"))
	assert.True(t, m.Matches(".go"))
	assert.False(t, m.Matches("main.go.bak"))
}

func TestMatcher_Question(t *testing.T) {
	t.Parallel()

	m, err := Compile("a?c", false)
	require.NoError(t, err)

	assert.True(t, m.Matches("abc"))
	assert.False(t, m.Matches("ac"))
	assert.False(t, m.Matches("abbc"))
}

func TestMatcher_CharacterClass(t *testing.T) {
	t.Parallel()

	m, err := Compile("file[0-9].txt", false)
	require.NoError(t, err)

	assert.True(t, m.Matches("file1.txt"))
	assert.False(t, m.Matches("filea.txt"))
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	t.Parallel()

	m, err := Compile("*.TXT", true)
	require.NoError(t, err)

	assert.True(t, m.Matches("readme.txt"))
	assert.True(t, m.Matches("README.TXT"))
	assert.False(t, m.Matches("readme.md"))
}

func TestMatcher_CaseSensitiveByDefault(t *testing.T) {
	t.Parallel()

	m, err := Compile("*.TXT", false)
	require.NoError(t, err)

	assert.False(t, m.Matches("readme.txt"))
	assert.True(t, m.Matches("README.TXT"))
}

func TestMatcher_PathMode(t *testing.T) {
	t.Parallel()

	m, err := Compile("src/*.go", false)
	require.NoError(t, err)
	assert.True(t, m.PathMode())

	assert.True(t, m.Matches("src/main.go"))
	assert.False(t, m.Matches("main.go"))
}

func TestMatcher_NoSlashIsNameOnly(t *testing.T) {
	t.Parallel()

	m, err := Compile("*.go", false)
	require.NoError(t, err)
	assert.False(t, m.PathMode())
}
