package serialize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/clarkmcc/treepp/internal/entry"
)

func sampleTree() *entry.Entry {
	return &entry.Entry{
		Name: "X:.",
		Kind: entry.Directory,
		Children: []*entry.Entry{
			{
				Name: "b_sub",
				Kind: entry.Directory,
				Children: []*entry.Entry{
					{Name: "inner.txt", Kind: entry.File},
				},
			},
			{Name: "a.txt", Kind: entry.File},
		},
	}
}

func TestFormatFromExtension(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ext  string
		want Format
		ok   bool
	}{
		{"json", JSON, true},
		{".JSON", JSON, true},
		{"yaml", YAML, true},
		{"yml", YAML, true},
		{"toml", TOML, true},
		{"txt", TXT, true},
		{"", TXT, true},
		{"exe", TXT, false},
	}

	for _, c := range cases {
		got, ok := FormatFromExtension(c.ext)
		assert.Equal(t, c.want, got, c.ext)
		assert.Equal(t, c.ok, ok, c.ext)
	}
}

func TestTree_JSON_PreservesRenderOrderNotAlphabetic(t *testing.T) {
	t.Parallel()

	out, err := Tree(sampleTree(), JSON)
	require.NoError(t, err)

	bIdx := indexOf(t, string(out), `"b_sub"`)
	aIdx := indexOf(t, string(out), `"a.txt"`)
	assert.Less(t, bIdx, aIdx, "b_sub was scanned/sorted before a.txt and must appear first")
}

func TestTree_JSON_FilesAreEmptyMappings(t *testing.T) {
	t.Parallel()

	out, err := Tree(sampleTree(), JSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))

	root := decoded["X:."].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{}, root["a.txt"])

	sub := root["b_sub"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{}, sub["inner.txt"])
}

func TestTree_JSON_RoundTripsThroughStdlib(t *testing.T) {
	t.Parallel()

	out, err := Tree(sampleTree(), JSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))

	reencoded, err := json.Marshal(decoded)
	require.NoError(t, err)

	var redecoded map[string]interface{}
	require.NoError(t, json.Unmarshal(reencoded, &redecoded))

	assert.Equal(t, decoded, redecoded)
}

func TestTree_YAML_Decodes(t *testing.T) {
	t.Parallel()

	out, err := Tree(sampleTree(), YAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "X:.")

	assert.Contains(t, string(out), "b_sub")
	assert.Contains(t, string(out), "a.txt")
}

func TestTree_TOML_ContainsAllNames(t *testing.T) {
	t.Parallel()

	out, err := Tree(sampleTree(), TOML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "b_sub")
	assert.Contains(t, string(out), "inner.txt")
}

func TestEscapeName_QuotesAndBackslashes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `say \"hi\"`, escapeName(`say "hi"`))
	assert.Equal(t, `back\\slash`, escapeName(`back\slash`))
	assert.Equal(t, "plain", escapeName("plain"))
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	t.Fatalf("%q not found in %q", needle, haystack)
	return -1
}
