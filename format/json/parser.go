package json

import (
	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/format"
)

// NewParser creates a new JSON parser.
//
// Example:
//
//	parser := json.NewParser()
//	doc, err := parser.Parse([]byte(`{"menu": {"id": [10, 20]}}`))
func NewParser() document.Parser {
	return format.NewParser(document.FormatJSON, Decode, Encode)
}
