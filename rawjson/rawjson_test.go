package rawjson

import (
	"errors"
	"testing"

	"github.com/linkjun/jsonuri"
)

const menu = `{
  "menu": {
    "id": [10, 20, 30],
    "a.b": "dotted",
    "~/": "escaped"
  }
}`

func TestGet(t *testing.T) {
	tests := []struct {
		path    string
		wantRaw string
		wantOK  bool
	}{
		{path: "/menu/id/2", wantRaw: "30", wantOK: true},
		{path: "/menu/id/3/../0", wantRaw: "10", wantOK: true},
		{path: "/menu/id", wantRaw: "[10, 20, 30]", wantOK: true},
		{path: "/menu/a.b", wantRaw: `"dotted"`, wantOK: true},
		{path: "/menu/~0~1", wantRaw: `"escaped"`, wantOK: true},
		{path: "/menu/id/3", wantOK: false},
		{path: "/menu/id/x", wantOK: false},
		{path: "/menu/id/0/deeper", wantOK: false},
		{path: "/nope", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, ok := Get([]byte(menu), tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && res.Raw != tt.wantRaw {
				t.Fatalf("Get(%q).Raw = %q, want %q", tt.path, res.Raw, tt.wantRaw)
			}
		})
	}

	root, ok := Get([]byte(menu), "")
	if !ok || !root.IsObject() {
		t.Fatalf("Get(root) = %v, %v; want the whole object", root.Type, ok)
	}
}

func TestSet_KeepsFormatting(t *testing.T) {
	got, err := Set([]byte(menu), "/menu/id/1", 99)
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	want := `{
  "menu": {
    "id": [10, 99, 30],
    "a.b": "dotted",
    "~/": "escaped"
  }
}`
	if string(got) != want {
		t.Fatalf("Set() =\n%s\nwant\n%s", got, want)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
		check string
		want  string
	}{
		{name: "append", path: "/menu/id/3", value: 40, check: "/menu/id/3", want: "40"},
		{name: "new key", path: "/menu/name", value: "lunch", check: "/menu/name", want: `"lunch"`},
		{name: "dotted key", path: "/menu/a.b", value: true, check: "/menu/a.b", want: "true"},
		{name: "object value", path: "/menu/x", value: map[string]any{"k": 1}, check: "/menu/x/k", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Set([]byte(menu), tt.path, tt.value)
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if !Valid(out) {
				t.Fatalf("Set() produced invalid JSON:\n%s", out)
			}
			res, ok := Get(out, tt.check)
			if !ok || res.Raw != tt.want {
				t.Fatalf("Get(%q) = %q, %v; want %q", tt.check, res.Raw, ok, tt.want)
			}
		})
	}
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want any
	}{
		{name: "past end", path: "/menu/id/5", want: new(*jsonuri.IndexOutOfRangeError)},
		{name: "key on array", path: "/menu/id/x", want: new(*jsonuri.NotAnIntegerError)},
		{name: "through scalar", path: "/menu/id/0/x", want: new(*jsonuri.TypeMismatchError)},
		{name: "missing parent", path: "/other/x", want: new(*jsonuri.PathNotFoundError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Set([]byte(menu), tt.path, 1)
			if err == nil {
				t.Fatalf("Set(%q) error = nil", tt.path)
			}
			if !errors.As(err, tt.want) {
				t.Fatalf("Set(%q) error = %T, want %T", tt.path, err, tt.want)
			}
		})
	}
}

func TestSetRaw_Root(t *testing.T) {
	got, err := SetRaw([]byte(menu), "/menu/..", []byte(`[1]`))
	if err != nil {
		t.Fatalf("SetRaw() error = %v", err)
	}
	if string(got) != "[1]" {
		t.Fatalf("SetRaw(root) = %q, want %q", got, "[1]")
	}

	if _, err := SetRaw([]byte(menu), "/menu/x", []byte(`{bad`)); err == nil {
		t.Fatal("SetRaw() with invalid JSON error = nil")
	}
}

func TestRemove(t *testing.T) {
	out, prev, ok := Remove([]byte(menu), "/menu/id/0")
	if !ok {
		t.Fatal("Remove() ok = false, want true")
	}
	if prev != 10.0 {
		t.Fatalf("Remove() prev = %v, want 10", prev)
	}
	res, _ := Get(out, "/menu/id")
	if res.Raw != "[null, 20, 30]" {
		t.Fatalf("after Remove id = %s, want [null, 20, 30]", res.Raw)
	}

	if same, _, ok := Remove([]byte(menu), "/missing"); ok || string(same) != menu {
		t.Fatal("Remove(/missing) should leave data untouched")
	}
	if _, _, ok := Remove([]byte(menu), ""); ok {
		t.Fatal("Remove(root) ok = true, want false")
	}
}

func TestDelete(t *testing.T) {
	out, err := Delete([]byte(menu), "/menu/id/0")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	res, _ := Get(out, "/menu/id")
	if len(res.Array()) != 2 || res.Array()[0].Int() != 20 {
		t.Fatalf("after Delete id = %s, want [20, 30]", res.Raw)
	}

	same, err := Delete([]byte(menu), "/missing")
	if err != nil || string(same) != menu {
		t.Fatalf("Delete(/missing) = %v; want data untouched", err)
	}

	var invalid *jsonuri.InvalidPathError
	if _, err := Delete([]byte(menu), "/"); !errors.As(err, &invalid) {
		t.Fatalf("Delete(root) error = %v, want InvalidPathError", err)
	}
}

func TestColonKeys(t *testing.T) {
	const doc = `{"a": 1, ":1": 7, ":x": {"y": 2}}`

	out, err := Set([]byte(doc), "/:1", "NEW")
	if err != nil {
		t.Fatalf("Set(/:1) error = %v", err)
	}
	if res, ok := Get(out, "/:1"); !ok || res.Raw != `"NEW"` {
		t.Fatalf("Get(/:1) = %q, %v; want \"NEW\"", res.Raw, ok)
	}
	if _, ok := Get(out, "/1"); ok {
		t.Fatalf("Set(/:1) created key \"1\":\n%s", out)
	}

	out, err = Set([]byte(doc), "/:x/y", 3)
	if err != nil {
		t.Fatalf("Set(/:x/y) error = %v", err)
	}
	if res, ok := Get(out, "/:x/y"); !ok || res.Raw != "3" {
		t.Fatalf("Get(/:x/y) = %q, %v; want 3", res.Raw, ok)
	}

	out, prev, ok := Remove([]byte(doc), "/:1")
	if !ok || prev != float64(7) {
		t.Fatalf("Remove(/:1) = %v, %v; want 7, true", prev, ok)
	}
	if res, _ := Get(out, "/:1"); res.Raw != "null" {
		t.Fatalf("after Remove /:1 = %q, want null:\n%s", res.Raw, out)
	}
	if _, ok := Get(out, "/1"); ok {
		t.Fatalf("Remove(/:1) created key \"1\":\n%s", out)
	}

	out, err = Delete([]byte(doc), "/:1")
	if err != nil {
		t.Fatalf("Delete(/:1) error = %v", err)
	}
	if _, ok := Get(out, "/:1"); ok {
		t.Fatalf("Delete(/:1) left the key:\n%s", out)
	}
	if res, _ := Get(out, "/a"); res.Raw != "1" {
		t.Fatalf("Delete(/:1) touched /a:\n%s", out)
	}
}
