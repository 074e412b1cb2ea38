package dsl

import (
	"github.com/reoring/validations/predicate"
)

// Spec names a predicate and its bound arguments. It is resolved against the
// builder's registry at Build time, unless it carries its own predicate.
type Spec struct {
	Name string
	Args []any

	pred predicate.Predicate
}

// P refers to a registered predicate by name ("gt?" and "gt" are the same).
func P(name string, args ...any) Spec { return Spec{Name: name, Args: args} }

// Use binds args to a predicate that is not registered anywhere.
func Use(p predicate.Predicate, args ...any) Spec {
	s := Spec{Args: args, pred: p}
	if p != nil {
		s.Name = p.Name()
	}
	return s
}

func (s Spec) bind(r *predicate.Registry) (predicate.Call, error) {
	if s.pred != nil {
		return predicate.Bind(s.pred, s.Args...)
	}
	return r.Bind(s.Name, s.Args...)
}

func (s Spec) String() string { return predicate.Normalize(s.Name) + "?" }

// Comparison
func Gt(n any) Spec     { return P("gt", n) }
func Gteq(n any) Spec   { return P("gteq", n) }
func Lt(n any) Spec     { return P("lt", n) }
func Lteq(n any) Spec   { return P("lteq", n) }
func Eql(v any) Spec    { return P("eql", v) }
func NotEql(v any) Spec { return P("not_eql", v) }

// Size
func MaxSize(n int) Spec          { return P("max_size", n) }
func MinSize(n int) Spec          { return P("min_size", n) }
func Size(n int) Spec             { return P("size", n) }
func SizeBetween(lo, hi int) Spec { return P("size", []any{lo, hi}) }

// Presence
func NotBlank() Spec { return P("filled") }
func Empty() Spec    { return P("empty") }
func None() Spec     { return P("none") }

// Content
func Format(pattern string) Spec    { return P("format", pattern) }
func IncludedIn(list ...any) Spec   { return P("included_in", list) }
func ExcludedFrom(list ...any) Spec { return P("excluded_from", list) }
func Satisfies(expr string) Spec    { return P("satisfies", expr) }
func Odd() Spec                     { return P("odd") }
func Even() Spec                    { return P("even") }
func True() Spec                    { return P("true") }
func False() Spec                   { return P("false") }

// Type
func Int() Spec     { return P("int") }
func Float() Spec   { return P("float") }
func Decimal() Spec { return P("decimal") }
func Number() Spec  { return P("number") }
func Str() Spec     { return P("str") }
func Bool() Spec    { return P("bool") }
func Array() Spec   { return P("array") }
func Hash() Spec    { return P("hash") }
