package gitignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, body, anchor string) *Rules {
	t.Helper()
	r, err := Parse([]byte(body), anchor)
	require.NoError(t, err)
	return r
}

func TestIsIgnored_NoChain(t *testing.T) {
	t.Parallel()
	assert.False(t, IsIgnored("a.txt", false, Chain{}))
}

func TestIsIgnored_RootPattern(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "*.log\n", ".")
	chain := Chain{}.Append(".", root)

	assert.True(t, IsIgnored("debug.log", false, chain))
	assert.False(t, IsIgnored("main.go", false, chain))
}

func TestIsIgnored_DirectoryOnlyPattern(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "build/\n", ".")
	chain := Chain{}.Append(".", root)

	assert.True(t, IsIgnored("build", true, chain))
	assert.True(t, IsIgnored("build/output.o", false, chain))
	assert.False(t, IsIgnored("build.go", false, chain))
}

// TestIsIgnored_NestedNegationOverridesParent covers the spec's gitignore
// inheritance scenario: a root .gitignore ignores a whole directory, and a
// nested .gitignore anchored at that same directory un-ignores one file
// inside it via negation.
func TestIsIgnored_NestedNegationOverridesParent(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "target/\n", ".")
	nested := mustParse(t, "!keep.log\n", "target")

	chain := Chain{}.Append(".", root).Append("target", nested)

	assert.False(t, IsIgnored("target/keep.log", false, chain))
	assert.True(t, IsIgnored("target/other.log", false, chain))
}

func TestIsIgnored_NegationScopedToItsAnchor(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "target/\n", ".")
	// A negation anchored at an unrelated sibling directory must not
	// affect paths under target/: chain evaluation is scoped by prefix.
	sibling := mustParse(t, "!keep.log\n", "sub")

	chain := Chain{}.Append(".", root).Append("sub", sibling)

	assert.True(t, IsIgnored("target/keep.log", false, chain))
	assert.True(t, IsIgnored("target/other.log", false, chain))
}

func TestIsIgnored_UnreadableGitignoreIsInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("!\n"), ".")
	require.Error(t, err)
}

func TestChain_AppendDoesNotMutateParent(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "*.log\n", ".")
	base := Chain{}.Append(".", root)

	child1 := base.Append("a", mustParse(t, "x\n", "a"))
	child2 := base.Append("b", mustParse(t, "y\n", "b"))

	assert.Len(t, base.links, 1)
	assert.Len(t, child1.links, 2)
	assert.Len(t, child2.links, 2)
}
