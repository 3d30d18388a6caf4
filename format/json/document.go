// Package json provides a standard library (encoding/json) codec for
// tree-backed documents.
//
// Comments and original formatting are not preserved.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/treedoc"
)

// Document is a JSON document backed by a decoded tree.
type Document = treedoc.Document

// New creates a new empty JSON document.
func New() *Document {
	return newDocument(nil)
}

// Parse parses JSON data into a Document.
//
// Any JSON value may be the root. Empty/whitespace input and a bare null are
// treated as an empty object.
func Parse(data []byte) (document.Document, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// Decode unmarshals JSON data into a tree of map[string]any, []any and
// scalars. Numbers decode as float64.
func Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	var root any
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if root == nil {
		return map[string]any{}, nil
	}
	return root, nil
}

// Encode marshals a tree as indented JSON followed by a newline.
func Encode(data any) ([]byte, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(b, '\n'), nil
}

func newDocument(root any) *Document {
	return treedoc.New(
		document.FormatJSON,
		treedoc.WithData(root),
		treedoc.WithMarshal(Encode),
	)
}
