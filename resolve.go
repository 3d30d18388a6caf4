package jsonuri

import "github.com/linkjun/jsonuri/uripath"

// Frame is one visited node on the way from the root to a location.
type Frame struct {
	// Key is the segment that led from the previous frame here. Empty for
	// the root frame.
	Key string
	// Index is the sequence index that led here, or -1 when the previous
	// frame is not a sequence or Key is not an index.
	Index int
	// Value is the node itself. It is nil for missing frames.
	Value any
	// Kind is KindMissing when the node does not exist.
	Kind Kind
}

// Location is the result of resolving a path: the chain of frames from the
// root (first) to the target (last).
type Location struct {
	// Path is the normalized form of the resolved path.
	Path   string
	Frames []Frame
}

// Target returns the frame of the addressed node.
func (l Location) Target() Frame {
	return l.Frames[len(l.Frames)-1]
}

// Value returns the addressed value, or nil when it is missing.
func (l Location) Value() any {
	return l.Target().Value
}

// Kind returns the kind of the addressed value.
func (l Location) Kind() Kind {
	return l.Target().Kind
}

// Found reports whether the addressed value exists.
func (l Location) Found() bool {
	return l.Target().Kind != KindMissing
}

// IsRoot reports whether the location is the document root.
func (l Location) IsRoot() bool {
	return len(l.Frames) == 1
}

// Key returns the final segment of the path, or "" for the root.
func (l Location) Key() string {
	return l.Target().Key
}

// Parent returns the frame of the container holding the target. It returns
// false for the root.
func (l Location) Parent() (Frame, bool) {
	if l.IsRoot() {
		return Frame{}, false
	}
	return l.Frames[len(l.Frames)-2], true
}

// Resolve walks path through data and returns where it ends. The walk keeps
// a stack of visited frames: key and index steps push a frame, ".." pops one,
// "..." pops two and "~" returns to the root. Descending into a missing
// value or a scalar pushes a missing frame, so later directives can still
// climb back out of it. Resolve never modifies data.
func Resolve(data any, path string) Location {
	frames := make([]Frame, 1, 8)
	frames[0] = Frame{Index: -1, Value: data, Kind: KindOf(data)}

	for _, step := range uripath.Parse(path) {
		switch step.Kind {
		case uripath.StepCurrent:
		case uripath.StepParent:
			frames = popFrames(frames, 1)
		case uripath.StepGrandparent:
			frames = popFrames(frames, 2)
		case uripath.StepRoot:
			frames = frames[:1]
		default:
			frames = append(frames, descend(frames[len(frames)-1], step))
		}
	}

	loc := Location{Frames: frames}
	keys := make([]string, 0, len(frames)-1)
	for _, f := range frames[1:] {
		keys = append(keys, f.Key)
	}
	loc.Path = buildPath(keys)
	return loc
}

func popFrames(frames []Frame, n int) []Frame {
	if keep := len(frames) - n; keep > 1 {
		return frames[:keep]
	}
	return frames[:1]
}

func descend(parent Frame, step uripath.Step) Frame {
	next := Frame{Key: step.Key, Index: -1}

	switch c := parent.Value.(type) {
	case map[string]any:
		if v, ok := c[step.Key]; ok {
			next.Value, next.Kind = v, KindOf(v)
		}
	case []any:
		if step.Kind != uripath.StepIndex {
			break
		}
		next.Index = step.Index
		if step.Index < len(c) {
			v := c[step.Index]
			next.Value, next.Kind = v, KindOf(v)
		}
	}

	return next
}

func buildPath(keys []string) string {
	anyKeys := make([]any, len(keys))
	for i, k := range keys {
		anyKeys[i] = k
	}
	return uripath.Build(anyKeys...)
}

// writeBack stores v in place of frames[depth] and returns the root. When
// depth is 0 the root itself is replaced and v is returned.
func writeBack(root any, frames []Frame, depth int, v any) any {
	if depth == 0 {
		return v
	}
	holder, target := frames[depth-1], frames[depth]
	switch c := holder.Value.(type) {
	case map[string]any:
		c[target.Key] = v
	case []any:
		c[target.Index] = v
	}
	return root
}
