// Package dsl provides a fluent builder for validation schemas.
//
// Overview
//   - Schema() starts a builder; Field(name) declares fields in evaluation order.
//   - Required()/Optional() set presence. Fields default to Required.
//   - Value/Filled/Maybe set the guard and append the predicate chain.
//   - Predicates are named with P(name, args...) or the typed helpers (Gt,
//     MaxSize, Format, ...) and resolved at Build against predicate.Default()
//     or the registry given with WithRegistry.
//
// Example
//
//	s, err := dsl.Schema().
//	    Field("age").Required().Filled(dsl.Int(), dsl.Gt(18), dsl.Lteq(130)).
//	    Field("tags").Optional().Maybe(dsl.MaxSize(3)).
//	    Field("token").Required().
//	    Build()
//
// Build reports every unknown predicate, bad argument and invalid rule at
// once (errors.Join); MustBuild panics instead.
package dsl
