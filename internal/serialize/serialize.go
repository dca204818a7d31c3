// Package serialize emits a scanned, sorted, rendered tree in one of the
// structured export formats described in spec.md §4.7: JSON, YAML, or TOML,
// all sharing one canonical shape -- a mapping from child name to its
// subtree, with files represented as empty mappings -- plus a plain-text
// passthrough for the renderer's own lines.
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/clarkmcc/treepp/internal/entry"
)

// Format identifies one of the supported export formats.
type Format int

const (
	TXT Format = iota
	JSON
	YAML
	TOML
)

// FormatFromExtension maps a file extension (with or without its leading
// dot) to a Format. Matching is case-insensitive. The second return value
// is false for an unrecognized extension (the returned Format is then TXT);
// config.Validate rejects such an --output as a configuration error.
func FormatFromExtension(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return JSON, true
	case "yaml", "yml":
		return YAML, true
	case "toml":
		return TOML, true
	case "txt", "":
		return TXT, true
	default:
		return TXT, false
	}
}

// node is the canonical in-memory shape shared by every structured format:
// an ordered list of (name, subtree) pairs. A leaf (file) node has no
// entries. Order matches the renderer's chosen sibling order, never
// alphabetic, per spec.md §4.7.
type node struct {
	names    []string
	children []*node
}

func buildNode(e *entry.Entry) *node {
	n := &node{}
	for _, c := range e.Children {
		n.names = append(n.names, escapeName(c.Name))
		n.children = append(n.children, buildNode(c))
	}
	return n
}

// escapeName escapes characters that are reserved in any of the three
// structured formats' mapping keys. JSON and YAML keys tolerate almost any
// string, but a name containing a literal double quote or backslash still
// needs escaping to round-trip through TOML's bare/quoted key rules, so
// this normalizes once for all three encoders rather than special-casing
// per format.
func escapeName(name string) string {
	if strings.ContainsAny(name, "\"\\") {
		return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(name)
	}
	return name
}

// Tree serializes root (with root.Name as the single top-level key) in the
// requested structured format. TXT is not handled here: plain-text output
// is the renderer's lines written verbatim, with no serialization step.
func Tree(root *entry.Entry, format Format) ([]byte, error) {
	top := &node{names: []string{root.Name}, children: []*node{buildNode(root)}}

	switch format {
	case JSON:
		return marshalJSON(top)
	case YAML:
		return marshalYAML(top)
	case TOML:
		return marshalTOML(top)
	default:
		return nil, fmt.Errorf("serialize: format %v has no structured encoding", format)
	}
}

func marshalJSON(n *node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *node) error {
	buf.WriteByte('{')
	for i, name := range n.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeJSON(buf, n.children[i]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// marshalYAML builds a yaml.Node mapping tree directly rather than handing
// yaml.v3 a Go map, because map iteration order is not the render order
// this format is required to preserve.
func marshalYAML(n *node) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{toYAMLNode(n)}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toYAMLNode(n *node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, name := range n.names {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			toYAMLNode(n.children[i]),
		)
	}
	return m
}

// marshalTOML hands the tree to BurntSushi/toml as a plain nested map.
// This is a deliberate, documented trade-off: the TOML encoder sorts map
// keys for deterministic output, so unlike the JSON and YAML encodings
// above, TOML output is alphabetical within each table rather than
// render-order. Preserving render order would require hand-rolling the
// TOML text instead of using the library encoder.
func marshalTOML(n *node) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(toPlainMap(n)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toPlainMap(n *node) map[string]interface{} {
	m := make(map[string]interface{}, len(n.names))
	for i, name := range n.names {
		m[name] = toPlainMap(n.children[i])
	}
	return m
}
