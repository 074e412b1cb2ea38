package validations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/validations/predicate"
)

// Construction errors.
var (
	ErrNilSchema         = errors.New("validations: nil schema")
	ErrEmptyFieldName    = errors.New("validations: empty field name")
	ErrDuplicateField    = errors.New("validations: duplicate field")
	ErrInvalidPresence   = errors.New("validations: invalid presence")
	ErrInvalidGuard      = errors.New("validations: invalid guard")
	ErrEmptyGuardedChain = errors.New("validations: guarded rule needs at least one predicate")
	ErrUnboundPredicate  = errors.New("validations: unbound predicate call")
)

// Fault kinds re-exported for callers that only import this package.
var (
	ErrUnsupportedOperation = predicate.ErrUnsupportedOperation
	ErrIncomparableOperands = predicate.ErrIncomparableOperands
)

// IsFault reports whether err carries an evaluation fault: a predicate was
// executed against a value whose type cannot support it. Hosts should treat
// faults as internal errors, not as validation failures.
func IsFault(err error) bool {
	_, ok := predicate.AsFault(err)
	return ok
}

// AsFault extracts the fault from err using errors.As.
func AsFault(err error) (*predicate.Fault, bool) { return predicate.AsFault(err) }

// FieldError holds the ordered failure messages of one field.
type FieldError struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// ValidationErrors is the error form of an unsuccessful Result, in declared
// field order.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, strings.Join(fe.Messages, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed.
func (ve ValidationErrors) Has(field string) bool {
	for _, fe := range ve {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages of field.
func (ve ValidationErrors) Get(field string) []string {
	for _, fe := range ve {
		if fe.Field == field {
			return fe.Messages
		}
	}
	return nil
}

// Fields lists the failing fields.
func (ve ValidationErrors) Fields() []string {
	out := make([]string, len(ve))
	for i, fe := range ve {
		out[i] = fe.Field
	}
	return out
}

// AsValidationErrors extracts ValidationErrors from an error using errors.As.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	_, ok := AsValidationErrors(err)
	return ok
}
