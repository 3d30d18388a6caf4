// Package jsonc provides a JSONC (JSON with comments) codec for tree-backed
// documents.
//
// Input is standardized with github.com/tailscale/hujson, so comments and
// trailing commas are accepted. Marshal emits plain indented JSON.
package jsonc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/treedoc"
	"github.com/tailscale/hujson"
)

// Document is a JSONC document backed by a decoded tree.
type Document = treedoc.Document

// New returns an empty JSONC Document.
func New() *Document {
	return newDocument(nil)
}

// Parse parses JSONC data into a Document.
//
// Empty input and a bare null are treated as an empty object.
func Parse(data []byte) (document.Document, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// Decode strips comments and trailing commas from data and unmarshals the
// result. Numbers decode as float64.
func Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	v, err := hujson.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSONC: %w", err)
	}

	// Standardize to remove comments for decoding
	v.Standardize()

	var result any
	if err := json.Unmarshal(v.Pack(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode JSONC: %w", err)
	}
	if result == nil {
		return map[string]any{}, nil
	}
	return result, nil
}

// Encode marshals a tree as indented JSON, which is valid JSONC.
func Encode(data any) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSONC: %w", err)
	}
	out, err := hujson.Format(b)
	if err != nil {
		return nil, fmt.Errorf("failed to format JSONC: %w", err)
	}
	return out, nil
}

func newDocument(root any) *Document {
	return treedoc.New(
		document.FormatJSONC,
		treedoc.WithData(root),
		treedoc.WithMarshal(Encode),
	)
}
