// Package predicate holds the named value checks that rules chain together.
//
// A Predicate has two halves: Check, which runs against the raw value and
// may fault, and Message, which renders the failure text from the bound
// arguments alone. Registry maps names to predicates; Bind produces an
// immutable Call ready for evaluation.
//
// Checks never coerce. When a value's type cannot support the operation a
// predicate needs, Check returns a *Fault instead of false:
//
//   - UnsupportedOperation: the type has no such operation (ordering on nil
//     or a slice, size of a number).
//   - IncomparableOperands: the operation exists but not against the bound
//     argument's type ("comparison of string with int failed").
//
// Built-ins: gt, gteq, lt, lteq, eql, not_eql, max_size, min_size, size,
// filled, empty, none, format, included_in, excluded_from, int, float,
// decimal, number, str, bool, array, hash, odd, even, true, false and
// satisfies (a CEL expression over `value`).
package predicate
