// Package rawjson edits serialized JSON in place using jsonuri paths.
//
// Operations work on the bytes through github.com/tidwall/gjson and
// github.com/tidwall/sjson, so the formatting of everything outside the
// edited value is kept. Paths are folded first; directives never reach the
// underlying libraries.
//
// Unlike jsonuri.Set, Set and SetRaw require the parent of the target to
// exist already.
package rawjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/linkjun/jsonuri"
	"github.com/linkjun/jsonuri/uripath"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Valid reports whether data is well-formed JSON.
func Valid(data []byte) bool {
	return gjson.ValidBytes(data)
}

// Get returns the value at path. The boolean is false when the path does
// not exist. Result.Raw holds the value exactly as it appears in data.
//
// Example:
//
//	res, ok := rawjson.Get(data, "/menu/id/2")
//	fmt.Println(res.Raw)
func Get(data []byte, path string) (gjson.Result, bool) {
	steps := uripath.Fold(uripath.Parse(path))
	if len(steps) == 0 {
		res := gjson.ParseBytes(data)
		return res, res.Exists()
	}

	parent := lookup(data, steps[:len(steps)-1])
	if !parent.IsObject() && !parent.IsArray() {
		return gjson.Result{}, false
	}
	last := steps[len(steps)-1]
	if parent.IsArray() && last.Kind != uripath.StepIndex {
		return gjson.Result{}, false
	}

	res := parent.Get(gjson.Escape(last.Key))
	return res, res.Exists()
}

// Set stores value, encoded with encoding/json, at path and returns the
// edited document.
func Set(data []byte, path string, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value for %q: %w", path, err)
	}
	return SetRaw(data, path, raw)
}

// SetRaw stores raw JSON at path and returns the edited document. Setting
// the root replaces the whole document.
//
// The parent of path must be an existing object or array. An array index
// equal to the length appends; a larger one is an IndexOutOfRangeError.
func SetRaw(data []byte, path string, raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &jsonuri.InvalidPathError{Path: path, Reason: "value is not valid JSON"}
	}
	steps := uripath.Fold(uripath.Parse(path))
	if len(steps) == 0 {
		return raw, nil
	}
	if err := checkParent(data, steps); err != nil {
		return nil, err
	}

	out, err := sjson.SetRawBytes(data, sjsonPath(steps), raw)
	if err != nil {
		return nil, fmt.Errorf("failed to set %q: %w", path, err)
	}
	return out, nil
}

// Remove replaces the value at path with null and returns the edited
// document along with the previous value. The key or array slot is kept.
// When the path does not exist, or is the root, data is returned as is and
// the boolean is false.
func Remove(data []byte, path string) ([]byte, any, bool) {
	steps := uripath.Fold(uripath.Parse(path))
	if len(steps) == 0 {
		return data, nil, false
	}
	prev, ok := Get(data, path)
	if !ok {
		return data, nil, false
	}

	out, err := sjson.SetRawBytes(data, sjsonPath(steps), []byte("null"))
	if err != nil {
		return data, nil, false
	}
	return out, prev.Value(), true
}

// Delete removes the key or array element at path. Array elements after it
// shift down. Deleting a missing path is not an error.
func Delete(data []byte, path string) ([]byte, error) {
	steps := uripath.Fold(uripath.Parse(path))
	if len(steps) == 0 {
		return nil, &jsonuri.InvalidPathError{Path: path, Reason: "cannot delete root document"}
	}
	if _, ok := Get(data, path); !ok {
		return data, nil
	}

	out, err := sjson.DeleteBytes(data, sjsonPath(steps))
	if err != nil {
		return nil, fmt.Errorf("failed to delete %q: %w", path, err)
	}
	return out, nil
}

// checkParent verifies the container that will hold the last step.
func checkParent(data []byte, steps []uripath.Step) error {
	parentSteps, last := steps[:len(steps)-1], steps[len(steps)-1]
	parentPath := uripath.Format(parentSteps)
	at := uripath.Format(steps)

	parent := lookup(data, parentSteps)
	switch {
	case !parent.Exists():
		return &jsonuri.PathNotFoundError{Path: parentPath}
	case parent.IsObject():
		return nil
	case parent.IsArray():
		if last.Kind != uripath.StepIndex {
			return &jsonuri.NotAnIntegerError{Path: at}
		}
		if n := len(parent.Array()); last.Index > n {
			return &jsonuri.IndexOutOfRangeError{Path: at, Index: last.Index, Len: n}
		}
		return nil
	default:
		return &jsonuri.TypeMismatchError{
			Path:     parentPath,
			Expected: "mapping or sequence",
			Actual:   jsonuri.KindOf(parent.Value()).String(),
		}
	}
}

// lookup resolves steps one at a time, so that key steps never match array
// elements.
func lookup(data []byte, steps []uripath.Step) gjson.Result {
	res := gjson.ParseBytes(data)
	for _, step := range steps {
		if res.IsArray() && step.Kind != uripath.StepIndex {
			return gjson.Result{}
		}
		if !res.IsObject() && !res.IsArray() {
			return gjson.Result{}
		}
		res = res.Get(gjson.Escape(step.Key))
		if !res.Exists() {
			return res
		}
	}
	return res
}

// sjsonPath builds the sjson path for steps. A segment starting with ":"
// is escaped, since sjson reads a leading colon as a key-forcing marker.
func sjsonPath(steps []uripath.Step) string {
	parts := make([]string, len(steps))
	for i, step := range steps {
		part := gjson.Escape(step.Key)
		if strings.HasPrefix(part, ":") {
			part = `\` + part
		}
		parts[i] = part
	}
	return strings.Join(parts, ".")
}
