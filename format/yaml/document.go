// Package yaml provides a YAML codec for tree-backed documents.
//
// Input is decoded through the yaml.Node AST so that mapping keys are always
// strings and aliases are expanded in place. Comments are not preserved.
package yaml

import (
	"bytes"
	"fmt"

	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/treedoc"
	"gopkg.in/yaml.v3"
)

// Document is a YAML document backed by a decoded tree.
type Document = treedoc.Document

// New creates a new empty YAML document.
func New() *Document {
	return newDocument(nil)
}

// Parse parses YAML data into a Document.
//
// Empty/nil input is treated as an empty document.
func Parse(data []byte) (document.Document, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// Decode unmarshals the first YAML document in data into a tree of
// map[string]any, []any and scalars. Only the first document of a stream
// is read.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return map[string]any{}, nil
		}
		node = node.Content[0]
	}

	v, err := nodeToValue(node)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return map[string]any{}, nil
	}
	return v, nil
}

// Encode marshals a tree as YAML with two-space indentation.
func Encode(data any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func newDocument(root any) *Document {
	return treedoc.New(
		document.FormatYAML,
		treedoc.WithData(root),
		treedoc.WithMarshal(Encode),
	)
}

// resolveAlias returns the actual node if the given node is an alias, otherwise returns the node itself.
func resolveAlias(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return node.Alias
	}
	return node
}

// nodeToValue converts a yaml.Node to a Go value.
// Alias nodes are automatically resolved to their target value.
func nodeToValue(node *yaml.Node) (any, error) {
	node = resolveAlias(node)
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return parseScalarValue(node)

	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i < len(node.Content)-1; i += 2 {
			key := resolveAlias(node.Content[i])
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("failed to parse YAML: line %d: mapping key must be a scalar, got %s",
					key.Line, nodeKindString(key.Kind))
			}
			v, err := nodeToValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key.Value] = v
		}
		return m, nil

	case yaml.SequenceNode:
		s := make([]any, len(node.Content))
		for i, n := range node.Content {
			v, err := nodeToValue(n)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil

	default:
		return nil, nil
	}
}

// parseScalarValue parses a scalar node value.
// It distinguishes between:
//   - null (explicit null or empty untagged value): returns nil
//   - empty string (!!str tag with empty value): returns ""
//   - zero values (0, false, etc.): returns the actual zero value
func parseScalarValue(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!str":
		return node.Value, nil
	case "":
		if node.Value == "" {
			return nil, nil
		}
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: line %d: %w", node.Line, err)
	}
	return v, nil
}

// nodeKindString returns a human-readable string for a node kind.
func nodeKindString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
