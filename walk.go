package jsonuri

import (
	"slices"

	"github.com/linkjun/jsonuri/uripath"
)

// WalkContext describes one node visited by Walk.
type WalkContext struct {
	// Path is the normalized path of the node; "" for the root.
	Path string
	// Value is the node itself.
	Value any
	// Kind is the kind of Value.
	Kind Kind
	// Depth is 0 for the root.
	Depth int
}

// IsLeaf reports whether the node has no children to visit.
func (c WalkContext) IsLeaf() bool {
	switch v := c.Value.(type) {
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return true
}

// Walk visits data depth-first, parents before children. Mapping keys are
// visited in sorted order and sequence elements in index order. If fn
// returns false, the walk stops.
//
// Example:
//
//	jsonuri.Walk(data, func(ctx jsonuri.WalkContext) bool {
//	    fmt.Printf("%s = %v\n", ctx.Path, ctx.Value)
//	    return true
//	})
func Walk(data any, fn func(ctx WalkContext) bool) {
	walk(data, nil, 0, fn)
}

func walk(v any, keys []any, depth int, fn func(ctx WalkContext) bool) bool {
	if !fn(WalkContext{Path: uripath.Build(keys...), Value: v, Kind: KindOf(v), Depth: depth}) {
		return false
	}

	switch c := v.(type) {
	case map[string]any:
		names := make([]string, 0, len(c))
		for k := range c {
			names = append(names, k)
		}
		slices.Sort(names)
		for _, k := range names {
			if !walk(c[k], append(keys, k), depth+1, fn) {
				return false
			}
		}
	case []any:
		for i, elem := range c {
			if !walk(elem, append(keys, i), depth+1, fn) {
				return false
			}
		}
	}
	return true
}

// Paths returns the path of every leaf in data, in Walk order. Empty
// containers count as leaves.
func Paths(data any) []string {
	var paths []string
	Walk(data, func(ctx WalkContext) bool {
		if ctx.Depth > 0 && ctx.IsLeaf() {
			paths = append(paths, ctx.Path)
		}
		return true
	})
	return paths
}
