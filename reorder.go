package jsonuri

import (
	"math"
	"slices"
	"strconv"

	"github.com/linkjun/jsonuri/uripath"
)

// Direction selects which side of a reference element a value lands on.
type Direction string

const (
	// Before places the value at the reference index.
	Before Direction = "before"
	// After places the value right after the reference index.
	After Direction = "after"
)

// ParseDirection converts "before" or "after" to a Direction. Anything
// else, including "", is After.
func ParseDirection(s string) Direction {
	if Direction(s) == Before {
		return Before
	}
	return After
}

// Insert splices value into the sequence holding path, before or after the
// index named by the last segment of path. The target position is clamped
// to the sequence bounds. It returns the root.
//
// Example:
//
//	// /menu/id = [10 20 30]
//	data, err := Insert(data, "/menu/id/1", 99, Before) // [10 99 20 30]
func Insert(data any, path string, value any, dir Direction) (any, error) {
	loc := Resolve(data, path)
	index, ok := uripath.IndexOf(loc.Path)
	if !ok {
		return data, report("insert", path, &NotAnIntegerError{Path: path})
	}
	parent, ok := loc.Parent()
	if !ok || parent.Kind != KindSequence {
		return data, report("insert", path, &NotAnArrayError{Path: path})
	}

	seq := parent.Value.([]any)
	target := min(index, len(seq))
	if dir != Before {
		target++
	}
	target = max(0, min(len(seq), target))

	return writeBack(data, loc.Frames, len(loc.Frames)-2, slices.Insert(seq, target, value)), nil
}

// Swap exchanges the values at pathA and pathB. Both values are read before
// either is written, so the paths may live in different containers. Both
// paths must exist.
func Swap(data any, pathA, pathB string) (any, error) {
	a, ok := Get(data, pathA)
	if !ok {
		return data, &PathNotFoundError{Path: pathA}
	}
	b, ok := Get(data, pathB)
	if !ok {
		return data, &PathNotFoundError{Path: pathB}
	}

	data, err := Set(data, pathA, b)
	if err != nil {
		return data, err
	}
	return Set(data, pathB, a)
}

// Move relocates the value at pathA next to the index named by pathB.
//
// When the two paths have different parents, the value is inserted next to
// pathB and the slot at pathA is then nulled as Remove does, so the source
// container keeps its length. If the insert fails nothing is removed. The
// removal uses pathA as it was before the insert: when pathB lies in a
// sequence that is an ancestor of pathA's container, the insert shifts that
// container and the removal misses, leaving the value in both places.
//
// When both paths share a parent sequence the value is inserted first and
// the original element is then spliced out of its shifted position, so the
// sequence keeps its length and elements:
//
//	// [10 20 30 40 50]
//	Move(data, "/3", "/0", After)   // [10 40 20 30 50]
//	Move(data, "/0", "/3", Before)  // [20 30 10 40 50]
func Move(data any, pathA, pathB string, dir Direction) (any, error) {
	src := Resolve(data, pathA)
	if !src.Found() {
		return data, &PathNotFoundError{Path: pathA}
	}
	if src.IsRoot() {
		return data, &InvalidPathError{Path: pathA, Reason: "cannot move root document"}
	}
	dstPath := uripath.Normalize(pathB)
	value := src.Value()

	var err error
	if uripath.Parent(src.Path) != uripath.Parent(dstPath) {
		if data, err = Insert(data, dstPath, value, dir); err != nil {
			return data, err
		}
		Remove(data, src.Path)
		return data, nil
	}

	parent, _ := src.Parent()
	if parent.Kind != KindSequence {
		return data, report("move", pathA, &NotAnArrayError{Path: pathA})
	}
	aIndex := src.Target().Index
	bIndex, ok := uripath.IndexOf(dstPath)
	if !ok {
		return data, report("move", pathB, &NotAnIntegerError{Path: pathB})
	}
	if aIndex == bIndex {
		return data, nil
	}

	if data, err = Insert(data, dstPath, value, dir); err != nil {
		return data, err
	}

	// The insert shifted everything from its position onward one slot to
	// the right. Find where the original element sits now.
	if dir == Before {
		bIndex--
	}
	if bIndex < aIndex {
		aIndex++
	}

	holder := Resolve(data, uripath.Parent(src.Path))
	seq := holder.Value().([]any)
	return writeBack(data, holder.Frames, len(holder.Frames)-1, slices.Delete(seq, aIndex, aIndex+1)), nil
}

// Up moves the element at path gap positions towards the start of its
// sequence. A gap of 0 means 1, and a negative gap moves the element
// towards the end instead. Requests that would move the first element, or
// an index outside the sequence, are ignored. A gap past the start lands
// the element first.
func Up(data any, path string, gap int) (any, error) {
	return shift(data, "up", path, -stepGap(gap))
}

// Down moves the element at path gap positions towards the end of its
// sequence. A gap of 0 means 1, and a negative gap moves the element
// towards the start instead. Requests that would move the last element, or
// an index outside the sequence, are ignored. A gap past the end lands the
// element last.
func Down(data any, path string, gap int) (any, error) {
	return shift(data, "down", path, stepGap(gap))
}

// stepGap maps gap to a nonzero offset that can be negated safely.
func stepGap(gap int) int {
	switch gap {
	case 0:
		return 1
	case math.MinInt:
		return math.MinInt + 1
	}
	return gap
}

// shift moves the element at path by offset positions. Negative offsets
// move towards the start.
func shift(data any, op, path string, offset int) (any, error) {
	loc := Resolve(data, path)
	parent, ok := loc.Parent()
	if !ok || parent.Kind != KindSequence {
		return data, report(op, path, &NotAnArrayError{Path: path})
	}
	index, ok := uripath.IndexOf(loc.Path)
	if !ok {
		return data, report(op, path, &NotAnIntegerError{Path: path})
	}

	n := len(parent.Value.([]any))
	if index < 0 || index >= n {
		return data, nil
	}
	if (offset < 0 && index == 0) || (offset > 0 && index == n-1) {
		return data, nil
	}

	dir := After
	if offset < 0 {
		dir = Before
	}
	offset = max(-n, min(n, offset))
	target := uripath.Normalize(loc.Path, "..", strconv.Itoa(max(0, index+offset)))
	return Move(data, loc.Path, target, dir)
}
