// Package format provides common utilities for document format implementations.
package format

import (
	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/treedoc"
)

// DecodeFunc decodes raw bytes into a tree of map[string]any, []any and
// scalar values.
type DecodeFunc func([]byte) (any, error)

// EncodeFunc serializes a tree back to bytes.
type EncodeFunc func(any) ([]byte, error)

// NewParser creates a Parser that decodes with decode and attaches encode
// as the marshaler of every parsed document.
//
// Example:
//
//	parser := format.NewParser(document.FormatJSON, decodeJSON, encodeJSON)
//	doc, err := parser.Parse(raw)
func NewParser(fmt document.DocumentFormat, decode DecodeFunc, encode EncodeFunc) document.Parser {
	return &parser{
		format: fmt,
		decode: decode,
		encode: encode,
	}
}

// parser implements document.Parser using the provided functions.
type parser struct {
	format document.DocumentFormat
	decode DecodeFunc
	encode EncodeFunc
}

// Ensure parser implements the document.Parser interface.
var _ document.Parser = (*parser)(nil)

// Parse implements the document.Parser interface.
func (p *parser) Parse(data []byte) (document.Document, error) {
	root, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return treedoc.New(p.format,
		treedoc.WithData(root),
		treedoc.WithMarshal(p.encode),
	), nil
}

// Format implements the document.Parser interface.
func (p *parser) Format() document.DocumentFormat {
	return p.format
}

// Marshal implements the document.Parser interface.
func (p *parser) Marshal(data any) ([]byte, error) {
	return p.encode(data)
}
