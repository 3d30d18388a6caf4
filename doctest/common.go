// Package doctest provides compliance suites for document parsers and
// sources.
//
// Example usage with a format parser:
//
//	func TestParser_Compliance(t *testing.T) {
//	    doctest.NewDocumentTester(t, yaml.NewParser()).TestAll()
//	}
//
// Example usage with a source:
//
//	func TestSource_Compliance(t *testing.T) {
//	    factory := func(data []byte) source.Source {
//	        return bytes.New(data, bytes.Writable())
//	    }
//	    doctest.NewSourceTester(t, factory).TestAll()
//	}
package doctest

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/linkjun/jsonuri/document"
)

// testT is the minimal testing interface used by doctest utilities.
type testT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// require fails the test immediately if the condition is false.
func require(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// requireNoError fails the test immediately if err is not nil.
func requireNoError(t testT, err error, format string, args ...any) {
	t.Helper()
	if err != nil {
		t.Fatalf(format, args...)
	}
}

// check reports an error if the condition is false, but continues the test.
func check(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}

// isUnsupportedError checks if the error is an UnsupportedStructureError.
func isUnsupportedError(err error) bool {
	var unsupported *document.UnsupportedStructureError
	return errors.As(err, &unsupported)
}

// valuesEqual compares two values for equality. Numbers compare by value,
// since formats decode them as different types.
func valuesEqual(got, want any) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}

	gotNum, gotIsNum := toFloat64(got)
	wantNum, wantIsNum := toFloat64(want)
	if gotIsNum && wantIsNum {
		return gotNum == wantNum
	}

	switch w := want.(type) {
	case []any:
		g, ok := got.([]any)
		if !ok || len(g) != len(w) {
			return false
		}
		for i := range w {
			if !valuesEqual(g[i], w[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok || len(g) != len(w) {
			return false
		}
		for k, wv := range w {
			gv, ok := g[k]
			if !ok || !valuesEqual(gv, wv) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(got, want)
}

// toFloat64 converts numeric types to float64 for comparison.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func describe(v any) string {
	return fmt.Sprintf("%v (%T)", v, v)
}
