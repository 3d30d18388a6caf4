package patch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSet_Encode(t *testing.T) {
	var s Set
	s.Add("/menu/id/-", 40)
	s.Replace("/menu/name/", nil)
	s.Remove("/menu/list/3/..")
	s.Move("/menu/id/0", "/menu/first")
	s.Copy("/a/b/.../c", "/d")
	s.Test("/menu/~0", "x")

	got, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `[` +
		`{"op":"add","path":"/menu/id/-","value":40},` +
		`{"op":"replace","path":"/menu/name","value":null},` +
		`{"op":"remove","path":"/menu/list"},` +
		`{"op":"move","path":"/menu/first","from":"/menu/id/0"},` +
		`{"op":"copy","path":"/d","from":"/c"},` +
		`{"op":"test","path":"/menu/~0","value":"x"}` +
		`]`
	if string(got) != want {
		t.Fatalf("Encode() =\n%s\nwant\n%s", got, want)
	}
	if s.Len() != 6 || s.IsEmpty() {
		t.Fatalf("Len() = %d, IsEmpty() = %v", s.Len(), s.IsEmpty())
	}
}

func TestSet_EncodeEmpty(t *testing.T) {
	var s Set
	got, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("Encode() = %s, want []", got)
	}
}

func TestSet_ApplyJSON(t *testing.T) {
	doc := []byte(`{"menu":{"id":[10,20,30]}}`)

	var s Set
	s.Test("/menu/id/0", 10)
	s.Add("/menu/id/1", 15)
	s.Remove("/menu/id/3")
	s.Copy("/menu/id", "/backup")

	got, err := s.ApplyJSON(doc)
	if err != nil {
		t.Fatalf("ApplyJSON() error = %v", err)
	}
	want := []byte(`{"menu":{"id":[10,15,20]},"backup":[10,15,20]}`)
	if !Equal(got, want) {
		t.Fatalf("ApplyJSON() = %s, want %s", got, want)
	}

	var empty Set
	same, err := empty.ApplyJSON(doc)
	if err != nil || string(same) != string(doc) {
		t.Fatalf("empty ApplyJSON() = %s, %v; want input unchanged", same, err)
	}
}

func TestSet_ApplyTestFailure(t *testing.T) {
	var s Set
	s.Test("/menu", "other")
	s.Remove("/menu")

	if _, err := s.ApplyJSON([]byte(`{"menu":"x"}`)); err == nil {
		t.Fatal("ApplyJSON() error = nil, want failed test")
	}
}

func TestSet_Apply(t *testing.T) {
	data := map[string]any{"menu": map[string]any{"id": []any{1, 2}}}

	var s Set
	s.Move("/menu/id/0", "/menu/id/-")

	got, err := s.Apply(data)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := map[string]any{"menu": map[string]any{"id": []any{2.0, 1.0}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyJSON_InvalidPatch(t *testing.T) {
	_, err := ApplyJSON([]byte(`{}`), []byte(`{"op":"add"}`))
	if err == nil || !strings.Contains(err.Error(), "decode patch") {
		t.Fatalf("ApplyJSON() error = %v, want decode error", err)
	}
}

func TestMerge(t *testing.T) {
	original := []byte(`{"name":"menu","id":[1,2],"drop":true}`)
	modified := []byte(`{"name":"lunch","id":[1,2]}`)

	mp, err := CreateMerge(original, modified)
	if err != nil {
		t.Fatalf("CreateMerge() error = %v", err)
	}
	if !Equal(mp, []byte(`{"name":"lunch","drop":null}`)) {
		t.Fatalf("CreateMerge() = %s", mp)
	}

	got, err := MergeJSON(original, mp)
	if err != nil {
		t.Fatalf("MergeJSON() error = %v", err)
	}
	if !Equal(got, modified) {
		t.Fatalf("MergeJSON() = %s, want %s", got, modified)
	}
}
