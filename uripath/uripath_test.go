package uripath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEscapeUnescape(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "simple", key: "menu", want: "menu"},
		{name: "tilde", key: "~", want: "~0"},
		{name: "slash", key: "/", want: "~1"},
		{name: "tilde then slash", key: "~foo/bar", want: "~0foo~1bar"},
		{name: "route", key: "/api/users", want: "~1api~1users"},
		{name: "empty", key: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Escape(tt.key)
			if got != tt.want {
				t.Fatalf("Escape(%q) = %q, want %q", tt.key, got, tt.want)
			}
			if back := Unescape(got); back != tt.key {
				t.Fatalf("Unescape(%q) = %q, want %q", got, back, tt.key)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want []Step
	}{
		{path: "", want: []Step{}},
		{path: "/", want: []Step{}},
		{path: "/menu/id/2", want: []Step{
			{Kind: StepKey, Key: "menu", Index: -1},
			{Kind: StepKey, Key: "id", Index: -1},
			{Kind: StepIndex, Key: "2", Index: 2},
		}},
		{path: "menu//id/", want: []Step{
			{Kind: StepKey, Key: "menu", Index: -1},
			{Kind: StepKey, Key: "id", Index: -1},
		}},
		{path: "/a/./../.../~", want: []Step{
			{Kind: StepKey, Key: "a", Index: -1},
			{Kind: StepCurrent},
			{Kind: StepParent},
			{Kind: StepGrandparent},
			{Kind: StepRoot},
		}},
		{path: "/~0/a~1b", want: []Step{
			{Kind: StepKey, Key: "~", Index: -1},
			{Kind: StepKey, Key: "a/b", Index: -1},
		}},
		{path: "/07/-1/0", want: []Step{
			{Kind: StepKey, Key: "07", Index: -1},
			{Kind: StepKey, Key: "-1", Index: -1},
			{Kind: StepIndex, Key: "0", Index: 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Parse(tt.path)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{parts: []string{""}, want: ""},
		{parts: []string{"/menu/id/"}, want: "/menu/id"},
		{parts: []string{"/menu/id/../"}, want: "/menu"},
		{parts: []string{"/menu/id/.../"}, want: ""},
		{parts: []string{"/menu/id/~/"}, want: ""},
		{parts: []string{"/menu/id/~/list"}, want: "/list"},
		{parts: []string{"/menu/./id"}, want: "/menu/id"},
		{parts: []string{"/menu/id/2", "/../3/"}, want: "/menu/id/3"},
		{parts: []string{"/menu/id/2", "..", "-1"}, want: "/menu/id/-1"},
		{parts: []string{"/a/../../.."}, want: ""},
		{parts: []string{"/a/b/c/...", "d"}, want: "/a/d"},
		{parts: []string{"/~0/x"}, want: "/~0/x"},
	}

	for _, tt := range tests {
		got := Normalize(tt.parts...)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}

func TestParentAndKeys(t *testing.T) {
	if got := Parent("/menu/id/2"); got != "/menu/id" {
		t.Fatalf("Parent() = %q, want %q", got, "/menu/id")
	}
	if got := Parent("/menu"); got != "" {
		t.Fatalf("Parent(/menu) = %q, want root", got)
	}
	if got := Parent(""); got != "" {
		t.Fatalf("Parent(root) = %q, want root", got)
	}

	want := []string{"paths", "/api", "0"}
	if diff := cmp.Diff(want, Keys("/paths/~1api/x/../0")); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexOf(t *testing.T) {
	tests := []struct {
		path   string
		want   int
		wantOK bool
	}{
		{path: "/menu/id/2", want: 2, wantOK: true},
		{path: "/menu/id/2/", want: 2, wantOK: true},
		{path: "/menu/id/-1", want: -1, wantOK: true},
		{path: "/menu/id/3/..", wantOK: false},
		{path: "/menu/id", wantOK: false},
		{path: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := IndexOf(tt.path)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("IndexOf(%q) = %d, %v; want %d, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		keys []any
		want string
	}{
		{keys: nil, want: ""},
		{keys: []any{"menu", "id", 2}, want: "/menu/id/2"},
		{keys: []any{"paths", "/api/users"}, want: "/paths/~1api~1users"},
		{keys: []any{int64(3), uint(4), uint64(5)}, want: "/3/4/5"},
		{keys: []any{true}, want: "/true"},
	}

	for _, tt := range tests {
		if got := Build(tt.keys...); got != tt.want {
			t.Errorf("Build(%v) = %q, want %q", tt.keys, got, tt.want)
		}
	}
}

func TestStep_String(t *testing.T) {
	steps := Parse("/a~1b/./../.../~/~0")
	var got []string
	for _, s := range steps {
		got = append(got, s.String())
	}
	want := []string{"a~1b", ".", "..", "...", "~", "~0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Step.String() mismatch (-want +got):\n%s", diff)
	}
	if !steps[1].IsDirective() || steps[0].IsDirective() {
		t.Fatalf("IsDirective() classification wrong")
	}
}
