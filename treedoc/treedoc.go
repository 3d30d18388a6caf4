// Package treedoc provides a document.Document backed by a decoded tree of
// map[string]any and []any values.
//
// Format packages decode into this tree and plug in their own marshal
// function; every path operation is delegated to package jsonuri.
package treedoc

import (
	"github.com/linkjun/jsonuri"
	"github.com/linkjun/jsonuri/document"
)

// Document is a document.Document implementation backed by an in-memory tree.
type Document struct {
	root   any
	format document.DocumentFormat

	marshal func(any) ([]byte, error)
}

// Ensure Document implements document.Document interface.
var _ document.Document = (*Document)(nil)

// Option configures a tree-backed Document.
type Option func(*Document)

// WithData sets the initial root. A nil root is treated as an empty mapping.
func WithData(root any) Option {
	return func(d *Document) {
		if root == nil {
			root = make(map[string]any)
		}
		d.root = root
	}
}

// WithMarshal sets the function used by Marshal.
func WithMarshal(fn func(any) ([]byte, error)) Option {
	return func(d *Document) {
		d.marshal = fn
	}
}

// New creates a new tree-backed Document with an empty mapping as root.
func New(format document.DocumentFormat, opts ...Option) *Document {
	d := &Document{
		root:   make(map[string]any),
		format: format,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Data returns the current root. It is shared, not copied.
func (d *Document) Data() any {
	return d.root
}

// Get retrieves the value at path.
func (d *Document) Get(path string) (any, bool) {
	return jsonuri.Get(d.root, path)
}

// Set stores value at path.
func (d *Document) Set(path string, value any) error {
	return d.apply(jsonuri.Set(d.root, path, value))
}

// Remove nulls the value at path and returns the previous value.
func (d *Document) Remove(path string) (any, bool) {
	return jsonuri.Remove(d.root, path)
}

// Swap exchanges the values at pathA and pathB.
func (d *Document) Swap(pathA, pathB string) error {
	return d.apply(jsonuri.Swap(d.root, pathA, pathB))
}

// Move relocates the value at pathA next to pathB.
func (d *Document) Move(pathA, pathB string, dir jsonuri.Direction) error {
	return d.apply(jsonuri.Move(d.root, pathA, pathB, dir))
}

// Up moves the array element at path gap positions towards the start.
func (d *Document) Up(path string, gap int) error {
	return d.apply(jsonuri.Up(d.root, path, gap))
}

// Down moves the array element at path gap positions towards the end.
func (d *Document) Down(path string, gap int) error {
	return d.apply(jsonuri.Down(d.root, path, gap))
}

// Insert splices value next to the index named by path.
func (d *Document) Insert(path string, value any, dir jsonuri.Direction) error {
	return d.apply(jsonuri.Insert(d.root, path, value, dir))
}

// apply keeps the root returned by an operation, which differs from the
// current one when the root sequence was resized.
func (d *Document) apply(root any, err error) error {
	d.root = root
	return err
}

// Marshal serializes the document to bytes, if configured.
func (d *Document) Marshal() ([]byte, error) {
	if d.marshal == nil {
		return nil, document.Unsupported("tree-backed document does not support Marshal without a configured marshaler")
	}
	return d.marshal(d.root)
}

// Format returns the document format.
func (d *Document) Format() document.DocumentFormat {
	return d.format
}
