// Package validations is a declarative validation engine.
//
// A Schema declares, per field, a presence policy (Required/Optional), a
// guard (GuardNone/GuardFilled/GuardMaybe) and a chain of predicates from
// the predicate package. Validate evaluates an Input against it and returns
// a Result with ordered, human-readable messages per failing field.
//
// Evaluation rules:
//
//   - Required + absent key: "is missing" followed by every predicate's
//     message; nothing is executed.
//   - Optional + absent key: valid; nothing is executed.
//   - GuardFilled + blank value (nil, "", empty collection): "must be
//     filled" followed by every predicate's message; nothing is executed.
//   - GuardMaybe + nil: valid; nothing is executed.
//   - Otherwise every predicate in the chain runs, in order, and each
//     failing one contributes its message.
//
// Predicates never coerce. A predicate executed against a value it cannot
// handle (ordering on nil, text against a number) returns a fault; Validate
// stops and returns it as the error. Faults are defects in the schema or in
// upstream typing, distinct from an unsuccessful Result: map them to 5xx,
// not 4xx (see IsFault).
//
// Design policy:
//   - Keep the evaluation core in the root package; it performs no I/O.
//   - Place the builder under dsl/, schema documents under schemadoc/,
//     input decoding under source/, HTTP wiring under middleware/ and the
//     CLI under cmd/validations.
//
// Typical usage:
//
//	s := dsl.Schema().
//	    Field("age").Required().Filled(dsl.Gt(18)).
//	    Field("nick").Optional().Maybe(dsl.MaxSize(16)).
//	    MustBuild()
//
//	in, err := source.JSON(body)
//	res, err := s.Validate(in)
//	if err != nil {
//	    // fault: internal error
//	}
//	if !res.Success {
//	    // res.Errors["age"] == []string{"must be greater than 18"}
//	}
package validations
