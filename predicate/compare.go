package predicate

import (
	"cmp"
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"
)

type numKind int

const (
	numInt numKind = iota + 1
	numUint
	numFloat
)

// number is a kind-tagged numeric operand, so mixed int/uint/float
// comparisons stay exact where possible.
type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func (n number) float() float64 {
	switch n.kind {
	case numInt:
		return float64(n.i)
	case numUint:
		return float64(n.u)
	default:
		return n.f
	}
}

// asNumber reports whether v is numeric. json.Number counts as a number:
// it is how decoded JSON numbers arrive, not text awaiting coercion.
func asNumber(v any) (number, bool) {
	if jn, ok := v.(json.Number); ok {
		if i, err := jn.Int64(); err == nil {
			return number{kind: numInt, i: i}, true
		}
		if f, err := jn.Float64(); err == nil {
			return number{kind: numFloat, f: f}, true
		}
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return number{}, false
	}
	switch {
	case isIntLike(rv.Kind()):
		return number{kind: numInt, i: rv.Int()}, true
	case isUintLike(rv.Kind()):
		return number{kind: numUint, u: rv.Uint()}, true
	case isFloatLike(rv.Kind()):
		return number{kind: numFloat, f: rv.Float()}, true
	default:
		return number{}, false
	}
}

// asText reports whether v is text (any string kind except json.Number).
func asText(v any) (string, bool) {
	if _, ok := v.(json.Number); ok {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func isIntLike(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUintLike(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isFloatLike(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// compareNumbers orders a against b. ordered is false when either side is NaN.
func compareNumbers(a, b number) (c int, ordered bool) {
	if a.kind == numFloat || b.kind == numFloat {
		fa, fb := a.float(), b.float()
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return 0, false
		}
		return cmp.Compare(fa, fb), true
	}
	switch {
	case a.kind == numInt && b.kind == numInt:
		return cmp.Compare(a.i, b.i), true
	case a.kind == numUint && b.kind == numUint:
		return cmp.Compare(a.u, b.u), true
	case a.kind == numInt:
		if a.i < 0 {
			return -1, true
		}
		return cmp.Compare(uint64(a.i), b.u), true
	default:
		if b.i < 0 {
			return 1, true
		}
		return cmp.Compare(a.u, uint64(b.i)), true
	}
}

// Compare orders the value v against the bound argument arg.
//
// Numbers order against numbers, text against text and time.Time against
// time.Time. A supported v with an incompatible arg faults with
// IncomparableOperands; any other v (nil, bool, collections, structs)
// faults with UnsupportedOperation. ordered is false for NaN operands.
func Compare(v, arg any) (c int, ordered bool, err error) {
	if IsNull(v) {
		return 0, false, Unsupported("compare", v)
	}
	if a, ok := asNumber(v); ok {
		b, ok := asNumber(arg)
		if !ok {
			return 0, false, Incomparable("compare", v, arg)
		}
		c, ordered = compareNumbers(a, b)
		return c, ordered, nil
	}
	if s, ok := asText(v); ok {
		t, ok := asText(arg)
		if !ok {
			return 0, false, Incomparable("compare", v, arg)
		}
		return strings.Compare(s, t), true, nil
	}
	if tv, ok := v.(time.Time); ok {
		ta, ok := arg.(time.Time)
		if !ok {
			return 0, false, Incomparable("compare", v, arg)
		}
		return tv.Compare(ta), true, nil
	}
	return 0, false, Unsupported("compare", v)
}

// Equal reports whether a and b are equal, comparing numbers by value
// across numeric types. It never faults.
func Equal(a, b any) bool {
	if na, ok := asNumber(a); ok {
		if nb, ok := asNumber(b); ok {
			c, ordered := compareNumbers(na, nb)
			return ordered && c == 0
		}
		return false
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}
