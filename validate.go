package validations

import (
	"fmt"

	"github.com/reoring/validations/predicate"
)

// Validate evaluates in against s. Validation failures are reported in the
// Result; a fault aborts the run and is returned as the error with a zero
// Result.
func Validate(s *Schema, in Input) (Result, error) {
	if s == nil {
		return Result{}, ErrNilSchema
	}
	return s.Validate(in)
}

// Validate evaluates in against the schema's fields in declared order.
// Keys of in that the schema does not declare are ignored.
func (s *Schema) Validate(in Input) (Result, error) {
	agg := newAggregator(len(s.fields))
	for _, f := range s.fields {
		v, present := in[f.Name]
		out, err := f.Rule.evaluate(present, v)
		if err != nil {
			return Result{}, fieldError(f.Name, err)
		}
		agg.add(f.Name, out)
	}
	return agg.result(), nil
}

// fieldError attaches the field name to a fault, or wraps any other error.
func fieldError(field string, err error) error {
	if f, ok := predicate.AsFault(err); ok {
		annotated := *f
		annotated.Field = field
		return &annotated
	}
	return fmt.Errorf("field %q: %w", field, err)
}
