package document

// Parser parses raw bytes into a Document.
// Each format (YAML, TOML, JSONC, etc.) implements this interface.
type Parser interface {
	// Parse parses the raw bytes and returns a Document.
	// Empty input produces an empty mapping.
	Parse(data []byte) (Document, error)

	// Format returns the document format this parser handles.
	Format() DocumentFormat

	// Marshal encodes a tree of map[string]any, []any and scalars in this
	// format, so that parsing the result yields an equal tree.
	//
	// Returns UnsupportedStructureError if the data contains structures
	// that cannot be represented in this document format.
	Marshal(data any) ([]byte, error)
}
