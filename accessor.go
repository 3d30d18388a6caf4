package jsonuri

import "github.com/linkjun/jsonuri/uripath"

// Get returns the value at path. The boolean is false when the path does
// not exist, including when it runs through a scalar.
//
// Example:
//
//	data := map[string]any{"menu": map[string]any{"id": []any{10, 20, 30}}}
//	v, ok := Get(data, "/menu/id/2")        // 30, true
//	v, ok = Get(data, "/menu/value")        // nil, false
func Get(data any, path string) (any, bool) {
	loc := Resolve(data, path)
	return loc.Value(), loc.Found()
}

// Set stores value at path and returns the root.
//
// Missing intermediate keys, and intermediate nulls, are created as
// mappings. A sequence index equal to the length appends. Set fails without
// modifying data when the path is the root, when an index is past the end
// of a sequence, when a key is used on a sequence, or when a scalar is in
// the way.
func Set(data any, path string, value any) (any, error) {
	steps := uripath.Fold(uripath.Parse(path))
	if len(steps) == 0 {
		return data, &InvalidPathError{Path: path, Reason: "cannot set root document"}
	}
	if err := checkAssign(data, steps); err != nil {
		return data, err
	}
	return assign(data, steps, value), nil
}

// checkAssign verifies that assign will succeed. It stops at the first
// missing value, since everything below it is created as mappings.
func checkAssign(data any, steps []uripath.Step) error {
	current := data
	for i, step := range steps {
		var next any
		switch c := current.(type) {
		case map[string]any:
			v, ok := c[step.Key]
			if !ok {
				return nil
			}
			next = v
		case []any:
			at := uripath.Format(steps[:i+1])
			if step.Kind != uripath.StepIndex {
				return &NotAnIntegerError{Path: at}
			}
			if step.Index > len(c) {
				return &IndexOutOfRangeError{Path: at, Index: step.Index, Len: len(c)}
			}
			if step.Index == len(c) {
				return nil
			}
			next = c[step.Index]
		default:
			return &TypeMismatchError{
				Path:     uripath.Format(steps[:i]),
				Expected: "mapping or sequence",
				Actual:   KindOf(current).String(),
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return nil
}

// assign writes value below container and returns the container, which is
// a new slice header when a sequence grew.
func assign(container any, steps []uripath.Step, value any) any {
	step, rest := steps[0], steps[1:]

	switch c := container.(type) {
	case map[string]any:
		if len(rest) == 0 {
			c[step.Key] = value
		} else {
			c[step.Key] = assign(materialize(c[step.Key]), rest, value)
		}
		return c
	case []any:
		if step.Index == len(c) {
			c = append(c, nil)
		}
		if len(rest) == 0 {
			c[step.Index] = value
		} else {
			c[step.Index] = assign(materialize(c[step.Index]), rest, value)
		}
		return c
	}
	return container
}

func materialize(v any) any {
	if v == nil {
		return map[string]any{}
	}
	return v
}

// Remove replaces the value at path with nil and returns the previous value.
// The key or slot stays in place, so sequence lengths never change. When
// the path does not exist, or is the root, Remove returns nil and false and
// leaves data untouched.
func Remove(data any, path string) (any, bool) {
	loc := Resolve(data, path)
	if !loc.Found() || loc.IsRoot() {
		return nil, false
	}
	prev := loc.Value()
	writeBack(data, loc.Frames, len(loc.Frames)-1, nil)
	return prev, true
}
