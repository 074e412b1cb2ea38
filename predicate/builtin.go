package predicate

import (
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"sync"
	"time"

	"github.com/reoring/validations/i18n"
)

// Builtins returns fresh instances of every built-in predicate.
func Builtins() []Predicate {
	return []Predicate{
		comparison("gt", func(c int) bool { return c > 0 }),
		comparison("gteq", func(c int) bool { return c >= 0 }),
		comparison("lt", func(c int) bool { return c < 0 }),
		comparison("lteq", func(c int) bool { return c <= 0 }),
		equality("eql", true),
		equality("not_eql", false),
		sizeBound("max_size", func(size, limit int) bool { return size <= limit }),
		sizeBound("min_size", func(size, limit int) bool { return size >= limit }),
		exactSize(),
		New("filled", func(v any, _ []any) (bool, error) { return !IsBlank(v), nil }, nil, WithArgs(Arity(0))),
		New("empty", func(v any, _ []any) (bool, error) { return IsBlank(v), nil }, nil, WithArgs(Arity(0))),
		New("none", func(v any, _ []any) (bool, error) { return IsNull(v), nil }, nil, WithArgs(Arity(0))),
		format(),
		inclusion("included_in", true),
		inclusion("excluded_from", false),
		typeCheck("int", isInteger),
		typeCheck("float", isFloat),
		typeCheck("decimal", isDecimal),
		typeCheck("number", func(v any) bool { _, ok := asNumber(v); return ok }),
		typeCheck("str", func(v any) bool { _, ok := asText(v); return ok }),
		typeCheck("bool", func(v any) bool { return kindOf(v) == reflect.Bool }),
		typeCheck("array", func(v any) bool { k := kindOf(v); return k == reflect.Slice || k == reflect.Array }),
		typeCheck("hash", func(v any) bool { return kindOf(v) == reflect.Map }),
		parity("odd", 1),
		parity("even", 0),
		boolean("true", true),
		boolean("false", false),
		Satisfies(),
	}
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

// checkArity guards direct Check calls that bypassed Bind.
func checkArity(args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %d argument(s), got %d", ErrInvalidArgs, n, len(args))
	}
	return nil
}

func first(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func templated(key, param string) MessageFunc {
	return func(args []any) string {
		return i18n.T(key, map[string]any{param: first(args)})
	}
}

func comparison(name string, accept func(c int) bool) *Func {
	return New(name,
		func(v any, args []any) (bool, error) {
			if err := checkArity(args, 1); err != nil {
				return false, err
			}
			c, ordered, err := Compare(v, args[0])
			if err != nil {
				return false, err
			}
			return ordered && accept(c), nil
		},
		templated(name, "num"),
		WithArgs(func(args []any) error {
			if err := Arity(1)(args); err != nil {
				return err
			}
			if _, ok := asNumber(args[0]); ok {
				return nil
			}
			if _, ok := asText(args[0]); ok {
				return nil
			}
			if _, ok := args[0].(time.Time); ok {
				return nil
			}
			return fmt.Errorf("%w: %s is not orderable", ErrInvalidArgs, TypeName(args[0]))
		}),
	)
}

func equality(name string, want bool) *Func {
	return New(name,
		func(v any, args []any) (bool, error) {
			if err := checkArity(args, 1); err != nil {
				return false, err
			}
			return Equal(v, args[0]) == want, nil
		},
		templated(name, "left"),
		WithArgs(Arity(1)),
	)
}

func sizeLimitArg(args []any) error {
	if err := Arity(1)(args); err != nil {
		return err
	}
	if n, ok := asInt(args[0]); !ok || n < 0 {
		return fmt.Errorf("%w: size limit must be a non-negative integer, got %v", ErrInvalidArgs, args[0])
	}
	return nil
}

func sizeBound(name string, accept func(size, limit int) bool) *Func {
	return New(name,
		func(v any, args []any) (bool, error) {
			if err := checkArity(args, 1); err != nil {
				return false, err
			}
			limit, ok := asInt(args[0])
			if !ok {
				return false, fmt.Errorf("%w: size limit %v", ErrInvalidArgs, args[0])
			}
			n, err := Size(v)
			if err != nil {
				return false, err
			}
			return accept(n, limit), nil
		},
		templated(name, "num"),
		WithArgs(sizeLimitArg),
	)
}

// sizeSpec decodes the size argument: an integer, or a two-element
// [min, max] list.
func sizeSpec(arg any) (lo, hi int, ranged, ok bool) {
	if n, isInt := asInt(arg); isInt {
		return n, n, false, n >= 0
	}
	elems, isList := listElems(arg)
	if !isList || len(elems) != 2 {
		return 0, 0, false, false
	}
	lo, okLo := asInt(elems[0])
	hi, okHi := asInt(elems[1])
	if !okLo || !okHi || lo < 0 || hi < lo {
		return 0, 0, false, false
	}
	return lo, hi, true, true
}

func exactSize() *Func {
	return New("size",
		func(v any, args []any) (bool, error) {
			if err := checkArity(args, 1); err != nil {
				return false, err
			}
			lo, hi, _, ok := sizeSpec(args[0])
			if !ok {
				return false, fmt.Errorf("%w: size %v", ErrInvalidArgs, args[0])
			}
			n, err := Size(v)
			if err != nil {
				return false, err
			}
			return n >= lo && n <= hi, nil
		},
		func(args []any) string {
			lo, hi, ranged, _ := sizeSpec(first(args))
			if ranged {
				return i18n.T(i18n.KeySizeRange, map[string]any{"left": lo, "right": hi})
			}
			return i18n.T("size", map[string]any{"size": first(args)})
		},
		WithArgs(func(args []any) error {
			if err := Arity(1)(args); err != nil {
				return err
			}
			if _, _, _, ok := sizeSpec(args[0]); !ok {
				return fmt.Errorf("%w: size must be an integer or [min, max], got %v", ErrInvalidArgs, args[0])
			}
			return nil
		}),
	)
}

var patternCache sync.Map // string -> *regexp.Regexp

func pattern(arg any) (*regexp.Regexp, error) {
	switch t := arg.(type) {
	case *regexp.Regexp:
		if t == nil {
			return nil, fmt.Errorf("%w: nil pattern", ErrInvalidArgs)
		}
		return t, nil
	case string:
		if re, ok := patternCache.Load(t); ok {
			return re.(*regexp.Regexp), nil
		}
		re, err := regexp.Compile(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		patternCache.Store(t, re)
		return re, nil
	default:
		return nil, fmt.Errorf("%w: pattern must be a string or *regexp.Regexp, got %s", ErrInvalidArgs, TypeName(arg))
	}
}

func format() *Func {
	return New("format",
		func(v any, args []any) (bool, error) {
			if err := checkArity(args, 1); err != nil {
				return false, err
			}
			re, err := pattern(args[0])
			if err != nil {
				return false, err
			}
			s, ok := asText(v)
			if !ok {
				return false, Unsupported("match", v)
			}
			return re.MatchString(s), nil
		},
		nil,
		WithArgs(func(args []any) error {
			if err := Arity(1)(args); err != nil {
				return err
			}
			_, err := pattern(args[0])
			return err
		}),
	)
}

// listElems flattens any slice or array argument into []any.
func listElems(arg any) ([]any, bool) {
	if l, ok := arg.([]any); ok {
		return l, true
	}
	k := kindOf(arg)
	if k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	rv := reflect.ValueOf(arg)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func inclusion(name string, want bool) *Func {
	return New(name,
		func(v any, args []any) (bool, error) {
			if err := checkArity(args, 1); err != nil {
				return false, err
			}
			elems, ok := listElems(args[0])
			if !ok {
				return false, fmt.Errorf("%w: list %v", ErrInvalidArgs, args[0])
			}
			found := false
			for _, e := range elems {
				if Equal(v, e) {
					found = true
					break
				}
			}
			return found == want, nil
		},
		func(args []any) string {
			elems, _ := listElems(first(args))
			return i18n.T(name, map[string]any{"list": elems})
		},
		WithArgs(func(args []any) error {
			if err := Arity(1)(args); err != nil {
				return err
			}
			if _, ok := listElems(args[0]); !ok {
				return fmt.Errorf("%w: expected a list, got %s", ErrInvalidArgs, TypeName(args[0]))
			}
			return nil
		}),
	)
}

func typeCheck(name string, is func(v any) bool) *Func {
	return New(name, func(v any, _ []any) (bool, error) { return is(v), nil }, nil, WithArgs(Arity(0)))
}

func isInteger(v any) bool {
	n, ok := asNumber(v)
	return ok && n.kind != numFloat
}

func isFloat(v any) bool {
	if isFloatLike(kindOf(v)) {
		return true
	}
	n, ok := asNumber(v)
	return ok && n.kind == numFloat
}

func isDecimal(v any) bool {
	switch t := v.(type) {
	case *big.Float:
		return t != nil
	case *big.Rat:
		return t != nil
	}
	return false
}

func parity(name string, rem int64) *Func {
	return New(name,
		func(v any, _ []any) (bool, error) {
			n, ok := asNumber(v)
			if !ok || n.kind == numFloat {
				return false, Unsupported(name, v)
			}
			if n.kind == numUint {
				return int64(n.u%2) == rem, nil
			}
			r := n.i % 2
			if r < 0 {
				r = -r
			}
			return r == rem, nil
		},
		nil,
		WithArgs(Arity(0)),
	)
}

func boolean(name string, want bool) *Func {
	return New(name,
		func(v any, _ []any) (bool, error) {
			if kindOf(v) != reflect.Bool {
				return false, nil
			}
			return reflect.ValueOf(v).Bool() == want, nil
		},
		nil,
		WithArgs(Arity(0)),
	)
}
