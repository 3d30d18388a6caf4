// Package patch builds and applies RFC 6902 JSON Patch and RFC 7386 JSON
// Merge Patch documents, using github.com/evanphx/json-patch.
//
// Operation paths are jsonuri paths. They are folded into plain JSON
// Pointers when a Set is encoded, so directives such as ".." may be used
// while building a patch.
package patch

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/linkjun/jsonuri/uripath"
)

// Op represents a JSON Patch operation type (RFC 6902).
type Op string

const (
	// OpAdd adds a value at the target location.
	OpAdd Op = "add"
	// OpRemove removes the value at the target location.
	OpRemove Op = "remove"
	// OpReplace replaces the value at the target location.
	OpReplace Op = "replace"
	// OpMove moves the value at From to the target location.
	OpMove Op = "move"
	// OpCopy copies the value at From to the target location.
	OpCopy Op = "copy"
	// OpTest checks that the target location holds Value.
	OpTest Op = "test"
)

// Operation is a single JSON Patch operation.
type Operation struct {
	Op    Op
	Path  string
	From  string
	Value any
}

type wireOperation struct {
	Op    Op      `json:"op"`
	Path  string  `json:"path"`
	From  *string `json:"from,omitempty"`
	Value *any    `json:"value,omitempty"`
}

// MarshalJSON encodes the operation with normalized pointers. Value is
// written for add, replace and test even when it is nil.
func (o Operation) MarshalJSON() ([]byte, error) {
	w := wireOperation{Op: o.Op, Path: uripath.Normalize(o.Path)}
	switch o.Op {
	case OpAdd, OpReplace, OpTest:
		w.Value = &o.Value
	case OpMove, OpCopy:
		from := uripath.Normalize(o.From)
		w.From = &from
	}
	return json.Marshal(w)
}

// Set is an ordered list of operations.
type Set []Operation

// Add appends an "add" operation to the set.
func (s *Set) Add(path string, value any) {
	*s = append(*s, Operation{Op: OpAdd, Path: path, Value: value})
}

// Remove appends a "remove" operation to the set.
func (s *Set) Remove(path string) {
	*s = append(*s, Operation{Op: OpRemove, Path: path})
}

// Replace appends a "replace" operation to the set.
func (s *Set) Replace(path string, value any) {
	*s = append(*s, Operation{Op: OpReplace, Path: path, Value: value})
}

// Move appends a "move" operation to the set.
func (s *Set) Move(from, path string) {
	*s = append(*s, Operation{Op: OpMove, From: from, Path: path})
}

// Copy appends a "copy" operation to the set.
func (s *Set) Copy(from, path string) {
	*s = append(*s, Operation{Op: OpCopy, From: from, Path: path})
}

// Test appends a "test" operation to the set.
func (s *Set) Test(path string, value any) {
	*s = append(*s, Operation{Op: OpTest, Path: path, Value: value})
}

// Len returns the number of operations in the set.
func (s Set) Len() int {
	return len(s)
}

// IsEmpty returns true if the set contains no operations.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Encode returns the set as an RFC 6902 document.
func (s Set) Encode() ([]byte, error) {
	ops := s
	if ops == nil {
		ops = Set{}
	}
	b, err := json.Marshal([]Operation(ops))
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}
	return b, nil
}

// ApplyJSON applies the set to a JSON document. An empty set returns doc
// unchanged.
func (s Set) ApplyJSON(doc []byte) ([]byte, error) {
	if s.IsEmpty() {
		return doc, nil
	}
	raw, err := s.Encode()
	if err != nil {
		return nil, err
	}
	return ApplyJSON(doc, raw)
}

// Apply applies the set to a decoded tree and returns the patched tree.
// Numbers in the result decode as float64.
func (s Set) Apply(data any) (any, error) {
	doc, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	out, err := s.ApplyJSON(doc)
	if err != nil {
		return nil, err
	}
	var result any
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("failed to decode patched document: %w", err)
	}
	return result, nil
}

// ApplyJSON applies a raw RFC 6902 patch document to doc.
func ApplyJSON(doc, patchDoc []byte) ([]byte, error) {
	p, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patch: %w", err)
	}
	out, err := p.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to apply patch: %w", err)
	}
	return out, nil
}

// MergeJSON applies an RFC 7386 merge patch to doc.
func MergeJSON(doc, mergeDoc []byte) ([]byte, error) {
	out, err := jsonpatch.MergePatch(doc, mergeDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to apply merge patch: %w", err)
	}
	return out, nil
}

// CreateMerge returns the merge patch that turns original into modified.
func CreateMerge(original, modified []byte) ([]byte, error) {
	out, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge patch: %w", err)
	}
	return out, nil
}

// Equal reports whether two JSON documents are structurally equal.
func Equal(a, b []byte) bool {
	return jsonpatch.Equal(a, b)
}
