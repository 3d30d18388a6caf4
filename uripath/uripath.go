// Package uripath parses and normalizes jsonuri paths.
//
// A path is a slash-delimited sequence of segments. Empty segments are
// ignored, so "/menu/id", "menu/id/" and "//menu//id" all name the same
// location. Besides keys and array indices, four directives navigate
// relative to the current location:
//
//	.    the current location
//	..   the parent of the current location
//	...  the grandparent of the current location
//	~    the document root
//
// Ascending above the root stays at the root.
//
// Keys use the JSON Pointer escapes: "~1" is "/" and "~0" is "~". A key
// consisting of a single "~" must therefore be written "~0".
package uripath

import (
	"fmt"
	"strconv"
	"strings"
)

// StepKind classifies a parsed path segment.
type StepKind uint8

const (
	// StepKey descends into a mapping by key.
	StepKey StepKind = iota
	// StepIndex descends into a sequence by index. The literal is kept in
	// Key so the same step can also address a mapping key such as "0".
	StepIndex
	// StepCurrent is the "." directive.
	StepCurrent
	// StepParent is the ".." directive.
	StepParent
	// StepGrandparent is the "..." directive.
	StepGrandparent
	// StepRoot is the "~" directive.
	StepRoot
)

var stepKindNames = [...]string{"key", "index", "current", "parent", "grandparent", "root"}

func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return fmt.Sprintf("StepKind(%d)", k)
}

// Step is one navigation unit of a parsed path.
type Step struct {
	Kind  StepKind
	Key   string
	Index int
}

// IsDirective reports whether the step is relative navigation rather than
// a descent into a container.
func (s Step) IsDirective() bool {
	return s.Kind >= StepCurrent
}

// String returns the step as an escaped path segment.
func (s Step) String() string {
	switch s.Kind {
	case StepCurrent:
		return "."
	case StepParent:
		return ".."
	case StepGrandparent:
		return "..."
	case StepRoot:
		return "~"
	}
	return Escape(s.Key)
}

// Escape escapes "~" and "/" in a key for use as a path segment.
func Escape(key string) string {
	// Order matters: escape ~ first, then /
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

// Unescape reverses Escape.
func Unescape(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	segment = strings.ReplaceAll(segment, "~0", "~")
	return segment
}

// Parse splits path into steps. Directives are kept in place; use Fold to
// apply them.
//
// Examples:
//
//	Parse("/menu/id/2")    -> [key menu] [key id] [index 2]
//	Parse("/menu/id/../")  -> [key menu] [key id] [parent]
//	Parse("")              -> []
func Parse(path string) []Step {
	segments := strings.Split(path, "/")
	steps := make([]Step, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		steps = append(steps, parseSegment(segment))
	}
	return steps
}

func parseSegment(segment string) Step {
	switch segment {
	case ".":
		return Step{Kind: StepCurrent}
	case "..":
		return Step{Kind: StepParent}
	case "...":
		return Step{Kind: StepGrandparent}
	case "~":
		return Step{Kind: StepRoot}
	}

	key := Unescape(segment)
	if index, ok := parseIndex(key); ok {
		return Step{Kind: StepIndex, Key: key, Index: index}
	}
	return Step{Kind: StepKey, Key: key, Index: -1}
}

// parseIndex accepts canonical non-negative decimals only: "0", "7", "42",
// but not "07", "+1" or "-1".
func parseIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Fold applies directives and returns only key and index steps.
func Fold(steps []Step) []Step {
	folded := make([]Step, 0, len(steps))
	for _, step := range steps {
		switch step.Kind {
		case StepCurrent:
		case StepParent:
			folded = pop(folded, 1)
		case StepGrandparent:
			folded = pop(folded, 2)
		case StepRoot:
			folded = folded[:0]
		default:
			folded = append(folded, step)
		}
	}
	return folded
}

func pop(steps []Step, n int) []Step {
	if n > len(steps) {
		n = len(steps)
	}
	return steps[:len(steps)-n]
}

// Format renders steps as a path. An empty slice renders as "" (the root).
func Format(steps []Step) string {
	if len(steps) == 0 {
		return ""
	}
	var b strings.Builder
	for _, step := range steps {
		b.WriteByte('/')
		b.WriteString(step.String())
	}
	return b.String()
}

// Normalize joins parts with "/" and folds every directive, producing a
// canonical absolute path.
//
// Examples:
//
//	Normalize("/menu/id/2", "..", "3")  -> "/menu/id/3"
//	Normalize("/menu/id/", "/.../")      -> ""
//	Normalize("/menu//id/./0")           -> "/menu/id/0"
//	Normalize("/menu/id", "~", "list")   -> "/list"
func Normalize(parts ...string) string {
	return Format(Fold(Parse(strings.Join(parts, "/"))))
}

// Parent returns the normalized path of the container holding path.
func Parent(path string) string {
	return Normalize(path, "..")
}

// Keys returns the unescaped keys of the normalized path.
func Keys(path string) []string {
	steps := Fold(Parse(path))
	keys := make([]string, len(steps))
	for i, step := range steps {
		keys[i] = step.Key
	}
	return keys
}

// IndexOf returns the trailing segment of the normalized path as an integer.
// Unlike index steps, negative values are accepted so callers can express
// positions before the start of a sequence.
func IndexOf(path string) (int, bool) {
	steps := Fold(Parse(path))
	if len(steps) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(steps[len(steps)-1].Key)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Build constructs a path from a sequence of keys. Keys can be strings or
// integers.
//
// Examples:
//
//	Build("menu", "id", 2)     -> "/menu/id/2"
//	Build("paths", "/api")     -> "/paths/~1api"
//	Build()                    -> ""
func Build(keys ...any) string {
	if len(keys) == 0 {
		return ""
	}

	var b strings.Builder
	for _, key := range keys {
		var keyStr string
		switch v := key.(type) {
		case string:
			keyStr = v
		case int:
			keyStr = strconv.Itoa(v)
		case int64:
			keyStr = strconv.FormatInt(v, 10)
		case uint:
			keyStr = strconv.FormatUint(uint64(v), 10)
		case uint64:
			keyStr = strconv.FormatUint(v, 10)
		default:
			keyStr = fmt.Sprint(v)
		}
		b.WriteByte('/')
		b.WriteString(Escape(keyStr))
	}
	return b.String()
}
