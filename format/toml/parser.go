package toml

import (
	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/format"
)

// NewParser creates a new TOML parser.
//
// Example:
//
//	parser := toml.NewParser()
//	doc, err := parser.Parse([]byte("[menu]\nid = [10, 20]\n"))
func NewParser() document.Parser {
	return format.NewParser(document.FormatTOML, Decode, Encode)
}
