package yaml

import (
	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/format"
)

// NewParser creates a new YAML parser.
//
// Example:
//
//	parser := yaml.NewParser()
//	doc, err := parser.Parse([]byte("menu:\n  id: [10, 20]\n"))
func NewParser() document.Parser {
	return format.NewParser(document.FormatYAML, Decode, Encode)
}
