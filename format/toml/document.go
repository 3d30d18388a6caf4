// Package toml provides a TOML codec for tree-backed documents, built on
// github.com/pelletier/go-toml/v2.
//
// The document root must be a table, and TOML has no null: Marshal reports
// the first nil value as an UnsupportedStructureError.
package toml

import (
	"bytes"
	"fmt"

	"github.com/linkjun/jsonuri"
	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/treedoc"
	"github.com/pelletier/go-toml/v2"
)

// Document is a TOML document backed by a decoded tree.
type Document = treedoc.Document

// New creates a new empty TOML document.
func New() *Document {
	return newDocument(nil)
}

// Parse parses TOML data into a Document.
//
// Empty/nil input is treated as an empty table.
func Parse(data []byte) (document.Document, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// Decode unmarshals TOML data into a tree. Integers decode as int64 and
// date/time values keep their go-toml types.
func Decode(data []byte) (any, error) {
	root := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return root, nil
	}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return root, nil
}

// Encode marshals a tree as TOML. The root must be a mapping with no nil
// values anywhere below it.
func Encode(data any) ([]byte, error) {
	if !jsonuri.IsObject(data) {
		return nil, document.Unsupported(fmt.Sprintf("TOML root must be a table, got %s", jsonuri.KindOf(data)))
	}
	if err := checkNil(data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// checkNil returns an UnsupportedStructureError for the first nil value in
// walk order.
func checkNil(data any) error {
	var err error
	jsonuri.Walk(data, func(ctx jsonuri.WalkContext) bool {
		if ctx.Value == nil {
			err = document.UnsupportedAt(ctx.Path, "TOML does not support null values")
			return false
		}
		return true
	})
	return err
}

func newDocument(root any) *Document {
	return treedoc.New(
		document.FormatTOML,
		treedoc.WithData(root),
		treedoc.WithMarshal(Encode),
	)
}
