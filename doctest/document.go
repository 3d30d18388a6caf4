package doctest

import (
	"testing"

	"github.com/linkjun/jsonuri"
	"github.com/linkjun/jsonuri/document"
)

// DocumentTesterOption configures DocumentTester behavior.
type DocumentTesterOption func(*DocumentTester)

// SkipNullTest skips checks that need null values.
// Use this for formats that don't support null values (e.g., TOML).
// The reason parameter is required to document why the test is skipped.
func SkipNullTest(reason string) DocumentTesterOption {
	return func(dt *DocumentTester) {
		dt.skipNullReason = reason
	}
}

// DocumentTester verifies a document.Parser and the documents it produces.
// Every case encodes its fixture with Parser.Marshal, parses it, operates
// on the document and, where relevant, round-trips it through
// Document.Marshal.
type DocumentTester struct {
	t              *testing.T
	parser         document.Parser
	skipNullReason string
}

// NewDocumentTester creates a DocumentTester for the given parser.
//
// Example:
//
//	func TestTOMLParser_Compliance(t *testing.T) {
//	    doctest.NewDocumentTester(t, toml.NewParser(),
//	        doctest.SkipNullTest("TOML doesn't support null values"),
//	    ).TestAll()
//	}
func NewDocumentTester(t *testing.T, parser document.Parser, opts ...DocumentTesterOption) *DocumentTester {
	dt := &DocumentTester{
		t:      t,
		parser: parser,
	}
	for _, opt := range opts {
		opt(dt)
	}
	return dt
}

// TestAll runs all standard compliance tests.
func (dt *DocumentTester) TestAll() {
	dt.t.Run("Format", dt.testFormat)
	dt.t.Run("LoadEmpty", dt.testLoadEmpty)
	dt.t.Run("LoadPath", dt.testLoadPath)
	dt.t.Run("NestedPaths", dt.testNestedPaths)
	dt.t.Run("SpecialValues", dt.testSpecialValues)
	dt.t.Run("ArrayPaths", dt.testArrayPaths)
	dt.t.Run("Set", dt.testSet)
	dt.t.Run("Remove", dt.testRemove)
	dt.t.Run("Reorder", dt.testReorder)
	dt.t.Run("RoundTrip", dt.testRoundTrip)
	dt.t.Run("MarshalNull", dt.testMarshalNull)
}

// load encodes data with the parser and parses the result.
func (dt *DocumentTester) load(t *testing.T, data map[string]any) document.Document {
	t.Helper()
	raw, err := dt.parser.Marshal(data)
	requireNoError(t, err, "Parser.Marshal() error = %v", err)
	doc, err := dt.parser.Parse(raw)
	requireNoError(t, err, "Parse() error = %v\ninput:\n%s", err, raw)
	return doc
}

// reload marshals doc and parses the output again.
func (dt *DocumentTester) reload(t *testing.T, doc document.Document) document.Document {
	t.Helper()
	raw, err := doc.Marshal()
	requireNoError(t, err, "Marshal() error = %v", err)
	next, err := dt.parser.Parse(raw)
	requireNoError(t, err, "Parse(Marshal()) error = %v\ninput:\n%s", err, raw)
	return next
}

// testFormat verifies Format() is consistent between parser and document.
func (dt *DocumentTester) testFormat(t *testing.T) {
	format := dt.parser.Format()
	require(t, format != "", "Format() returned empty string")

	doc := dt.load(t, map[string]any{"key": "value"})
	check(t, doc.Format() == format, "Document.Format() = %q, want %q", doc.Format(), format)
}

// testLoadEmpty verifies empty input yields an empty mapping.
func (dt *DocumentTester) testLoadEmpty(t *testing.T) {
	for name, input := range map[string][]byte{"nil": nil, "whitespace": []byte("  \n")} {
		t.Run(name, func(t *testing.T) {
			doc, err := dt.parser.Parse(input)
			requireNoError(t, err, "Parse() error = %v", err)
			root, ok := doc.Data().(map[string]any)
			require(t, ok, "Data() = %T, want map[string]any", doc.Data())
			check(t, len(root) == 0, "Data() = %v, want empty mapping", root)
		})
	}
}

// testLoadPath verifies scalar values survive encoding and are addressable.
func (dt *DocumentTester) testLoadPath(t *testing.T) {
	doc := dt.load(t, map[string]any{
		"string": "hello",
		"int":    42,
		"float":  3.14,
		"bool":   true,
	})

	tests := []struct {
		path  string
		value any
	}{
		{"/string", "hello"},
		{"/int", 42},
		{"/float", 3.14},
		{"/bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := doc.Get(tt.path)
			require(t, ok, "Get(%q) returned ok=false", tt.path)
			check(t, valuesEqual(got, tt.value), "Get(%q) = %s, want %s", tt.path, describe(got), describe(tt.value))
		})
	}
}

// testNestedPaths verifies nested paths and directives resolve correctly.
func (dt *DocumentTester) testNestedPaths(t *testing.T) {
	doc := dt.load(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "deep"},
			"d": "sibling",
		},
	})

	tests := []struct {
		path string
		want any
	}{
		{"/a/b/c", "deep"},
		{"/a/b/c/../../d", "sibling"},
		{"/a/b/c/.../d", "sibling"},
		{"/a/b/~/a/d", "sibling"},
		{"/a/./b/c", "deep"},
	}
	for _, tt := range tests {
		got, ok := doc.Get(tt.path)
		require(t, ok, "Get(%q) returned ok=false", tt.path)
		check(t, got == tt.want, "Get(%q) = %v, want %v", tt.path, got, tt.want)
	}

	container, ok := doc.Get("/a/b")
	require(t, ok, "Get(/a/b) returned ok=false")
	_, isMap := container.(map[string]any)
	check(t, isMap, "Get(/a/b) returned %T, want map[string]any", container)
}

// testSpecialValues verifies null, empty string, zero, and false are handled correctly.
func (dt *DocumentTester) testSpecialValues(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    any
		skipNull bool
	}{
		{"null", "null_value", nil, true},
		{"empty_string", "empty_string", "", false},
		{"zero_int", "zero_int", 0, false},
		{"false_bool", "false_bool", false, false},
	}

	// null_value is left out when the format can't encode it.
	testData := map[string]any{
		"empty_string": "",
		"zero_int":     0,
		"false_bool":   false,
	}
	if dt.skipNullReason == "" {
		testData["null_value"] = nil
	}
	doc := dt.load(t, testData)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.skipNull && dt.skipNullReason != "" {
				t.Skip(dt.skipNullReason)
			}
			path := "/" + tt.key
			got, ok := doc.Get(path)
			require(t, ok, "Get(%q) returned ok=false", path)
			check(t, valuesEqual(got, tt.value), "Get(%q) = %s, want %s", path, describe(got), describe(tt.value))
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, ok := doc.Get("/nonexistent")
		check(t, !ok, "Get(/nonexistent) returned ok=true, want false")
		_, ok = doc.Get("/zero_int/below")
		check(t, !ok, "Get(/zero_int/below) returned ok=true, want false")
	})
}

// testArrayPaths verifies array elements are addressable by index.
func (dt *DocumentTester) testArrayPaths(t *testing.T) {
	doc := dt.load(t, map[string]any{"items": []any{"a", "b", "c"}})

	got, ok := doc.Get("/items")
	require(t, ok, "Get(/items) returned ok=false")
	arr, isArr := got.([]any)
	require(t, isArr, "Get(/items) returned %T, want []any", got)
	require(t, len(arr) == 3, "len(items) = %d, want 3", len(arr))

	elem, ok := doc.Get("/items/0")
	require(t, ok, "Get(/items/0) returned ok=false")
	check(t, elem == "a", "Get(/items/0) = %v, want \"a\"", elem)

	_, ok = doc.Get("/items/3")
	check(t, !ok, "Get(/items/3) returned ok=true, want false")
	_, ok = doc.Get("/items/01")
	check(t, !ok, "Get(/items/01) returned ok=true, want false")
}

// testSet verifies Set results survive a Marshal round trip.
func (dt *DocumentTester) testSet(t *testing.T) {
	doc := dt.load(t, map[string]any{"existing": "value", "items": []any{"a"}})

	requireNoError(t, doc.Set("/new_key", "new_value"), "Set(/new_key) failed")
	requireNoError(t, doc.Set("/x/y/z", "nested_value"), "Set(/x/y/z) failed")
	requireNoError(t, doc.Set("/existing", "replaced"), "Set(/existing) failed")
	requireNoError(t, doc.Set("/items/1", "b"), "Set(/items/1) append failed")

	err := doc.Set("/items/5", "x")
	check(t, err != nil, "Set(/items/5) error = nil, want out of range")

	doc = dt.reload(t, doc)
	want := map[string]any{
		"existing": "replaced",
		"new_key":  "new_value",
		"x":        map[string]any{"y": map[string]any{"z": "nested_value"}},
		"items":    []any{"a", "b"},
	}
	check(t, valuesEqual(doc.Data(), want), "Data() after round trip = %v, want %v", doc.Data(), want)
}

// testRemove verifies Remove nulls values in place.
func (dt *DocumentTester) testRemove(t *testing.T) {
	doc := dt.load(t, map[string]any{"key": "value", "items": []any{"a", "b"}})

	prev, ok := doc.Remove("/items/0")
	require(t, ok, "Remove(/items/0) returned ok=false")
	check(t, prev == "a", "Remove(/items/0) = %v, want \"a\"", prev)

	got, _ := doc.Get("/items")
	check(t, valuesEqual(got, []any{nil, "b"}), "items after Remove = %v, want [<nil> b]", got)

	_, ok = doc.Remove("/missing")
	check(t, !ok, "Remove(/missing) returned ok=true, want false")

	if dt.skipNullReason != "" {
		return
	}
	doc = dt.reload(t, doc)
	got, _ = doc.Get("/items")
	check(t, valuesEqual(got, []any{nil, "b"}), "items after round trip = %v, want [<nil> b]", got)
}

// testReorder verifies the array reordering operations through a document.
func (dt *DocumentTester) testReorder(t *testing.T) {
	items := func() map[string]any {
		return map[string]any{"items": []any{"a", "b", "c", "d", "e"}}
	}

	tests := []struct {
		name string
		op   func(doc document.Document) error
		want []any
	}{
		{"Move", func(doc document.Document) error {
			return doc.Move("/items/3", "/items/0", jsonuri.After)
		}, []any{"a", "d", "b", "c", "e"}},
		{"Up", func(doc document.Document) error {
			return doc.Up("/items/2", 1)
		}, []any{"a", "c", "b", "d", "e"}},
		{"Down", func(doc document.Document) error {
			return doc.Down("/items/0", 10)
		}, []any{"b", "c", "d", "e", "a"}},
		{"Insert", func(doc document.Document) error {
			return doc.Insert("/items/1", "x", jsonuri.Before)
		}, []any{"a", "x", "b", "c", "d", "e"}},
		{"Swap", func(doc document.Document) error {
			return doc.Swap("/items/0", "/items/4")
		}, []any{"e", "b", "c", "d", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dt.load(t, items())
			requireNoError(t, tt.op(doc), "%s failed", tt.name)
			doc = dt.reload(t, doc)
			got, _ := doc.Get("/items")
			check(t, valuesEqual(got, tt.want), "items = %v, want %v", got, tt.want)
		})
	}
}

// testRoundTrip verifies Marshal output parses back to the same tree.
func (dt *DocumentTester) testRoundTrip(t *testing.T) {
	data := map[string]any{
		"name": "menu",
		"list": []any{
			map[string]any{"id": 1, "tags": []any{"x", "y"}},
			map[string]any{"id": 2, "tags": []any{}},
		},
		"paths": map[string]any{"/api/users": "users"},
	}
	doc := dt.load(t, data)
	doc = dt.reload(t, doc)
	check(t, valuesEqual(doc.Data(), data), "Data() = %v, want %v", doc.Data(), data)

	got, ok := doc.Get("/paths/~1api~1users")
	check(t, ok && got == "users", "Get(/paths/~1api~1users) = %v, %v", got, ok)
}

// testMarshalNull verifies formats without null report it as unsupported.
func (dt *DocumentTester) testMarshalNull(t *testing.T) {
	_, err := dt.parser.Marshal(map[string]any{"key": nil})
	if dt.skipNullReason == "" {
		requireNoError(t, err, "Marshal(null) error = %v", err)
		return
	}
	check(t, isUnsupportedError(err), "Marshal(null) error = %v, want UnsupportedStructureError", err)
}
