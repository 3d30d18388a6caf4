package jsonuri

import "fmt"

// PathNotFoundError is returned when an operation needs a value that does
// not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// InvalidPathError is returned when a path cannot address the requested
// operation, such as writing the document root.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// TypeMismatchError is returned when a write has to descend through a value
// that is not a container.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch at %q: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// NotAnArrayError is returned when a reordering needs the parent of Path to
// be a sequence and it is not.
type NotAnArrayError struct {
	Path string
}

func (e *NotAnArrayError) Error() string {
	return fmt.Sprintf("parent of %q is not an array", e.Path)
}

// NotAnIntegerError is returned when the trailing segment of Path must be an
// array index and is not.
type NotAnIntegerError struct {
	Path string
}

func (e *NotAnIntegerError) Error() string {
	return fmt.Sprintf("last segment of %q is not an integer", e.Path)
}

// IndexOutOfRangeError is returned when a write addresses a sequence slot
// beyond its end.
type IndexOutOfRangeError struct {
	Path  string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range at %q (length %d)", e.Index, e.Path, e.Len)
}
