package jsonc

import (
	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/format"
)

// NewParser creates a new JSONC parser.
//
// Comments in the input are accepted but dropped on Marshal.
//
// Example:
//
//	parser := jsonc.NewParser()
//	doc, err := parser.Parse([]byte("{\n  // ids\n  \"id\": [10, 20],\n}"))
func NewParser() document.Parser {
	return format.NewParser(document.FormatJSONC, Decode, Encode)
}
