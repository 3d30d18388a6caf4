package jsonuri

import "testing"

// menu returns the fixture used throughout the examples:
// {"menu": {"id": [...ids], "name": "main"}}.
func menu(ids ...any) map[string]any {
	return map[string]any{
		"menu": map[string]any{
			"id":   ids,
			"name": "main",
		},
	}
}

func ids(t *testing.T, data any) []any {
	t.Helper()
	v, ok := Get(data, "/menu/id")
	if !ok {
		t.Fatalf("Get(/menu/id) not found")
	}
	seq, ok := v.([]any)
	if !ok {
		t.Fatalf("/menu/id = %T, want []any", v)
	}
	return seq
}

// captureDiagnostics installs a recording handler for the duration of the test.
func captureDiagnostics(t *testing.T) *[]Diagnostic {
	t.Helper()
	var got []Diagnostic
	SetDiagnosticHandler(func(d Diagnostic) {
		got = append(got, d)
	})
	t.Cleanup(func() {
		SetDiagnosticHandler(defaultDiagnosticHandler)
	})
	return &got
}
