package document

import "fmt"

// UnsupportedStructureError is returned when a value cannot be represented
// in the document format, such as null in TOML.
type UnsupportedStructureError struct {
	Path   string
	Reason string
}

func (e *UnsupportedStructureError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported structure: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported structure at %q: %s", e.Path, e.Reason)
}

// Unsupported creates an UnsupportedStructureError with the given reason.
// Use this for simple cases without a specific path.
//
// Example:
//
//	return nil, document.Unsupported("root must be a table")
func Unsupported(reason string) *UnsupportedStructureError {
	return &UnsupportedStructureError{Reason: reason}
}

// UnsupportedAt creates an UnsupportedStructureError at a specific path.
//
// Example:
//
//	return nil, document.UnsupportedAt("/items/0", "null values")
func UnsupportedAt(path, reason string) *UnsupportedStructureError {
	return &UnsupportedStructureError{Path: path, Reason: reason}
}
