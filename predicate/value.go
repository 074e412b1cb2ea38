package predicate

import (
	"encoding/json"
	"reflect"
	"unicode/utf8"
)

// IsNull reports whether v is null: a nil interface or a nil pointer.
// Empty or nil slices and maps are not null; they are empty collections.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// IsBlank reports whether v is null or the empty form of its own type:
// zero-length text, sequence, array or mapping of any concrete type.
func IsBlank(v any) bool {
	if IsNull(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

// Size returns the character count of text or the element count of a
// sequence, array or mapping. Every other value, null included, faults with
// UnsupportedOperation.
func Size(v any) (int, error) {
	if IsNull(v) {
		return 0, Unsupported("size", v)
	}
	if _, ok := v.(json.Number); ok {
		return 0, Unsupported("size", v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), nil
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	default:
		return 0, Unsupported("size", v)
	}
}

// asInt extracts an integral bound argument (ints, uints, integral floats
// and json.Number).
func asInt(v any) (int, bool) {
	n, ok := asNumber(v)
	if !ok {
		return 0, false
	}
	switch n.kind {
	case numInt:
		return int(n.i), true
	case numUint:
		return int(n.u), true
	default:
		if n.f != float64(int(n.f)) {
			return 0, false
		}
		return int(n.f), true
	}
}
