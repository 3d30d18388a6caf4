package jsonuri

import (
	"fmt"
	"math"
)

// Kind classifies a node in the data model.
type Kind uint8

const (
	// KindMissing marks a location with no value.
	KindMissing Kind = iota
	// KindMapping is a map[string]any.
	KindMapping
	// KindSequence is a []any.
	KindSequence
	// KindScalar is any other value, including nil.
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsContainer reports whether values of kind k can be descended into.
func (k Kind) IsContainer() bool {
	return k == KindMapping || k == KindSequence
}

// KindOf returns the kind of a present value. It never returns KindMissing.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

// IsObject reports whether v is a mapping.
func IsObject(v any) bool {
	return KindOf(v) == KindMapping
}

// IsArray reports whether v is a sequence.
func IsArray(v any) bool {
	return KindOf(v) == KindSequence
}

// IsInteger reports whether v is an integral number. Floats qualify when they
// have no fractional part, since decoded JSON numbers are float64.
func IsInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isIntegral(float64(n))
	case float64:
		return isIntegral(n)
	default:
		return false
	}
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}
