package predicate

import (
	"errors"
	"fmt"
	"strings"
)

// FaultKind distinguishes why a predicate could not be executed.
type FaultKind int

const (
	// UnsupportedOperation: the value's type has no implementation of the
	// operation at all (ordering on nil, size of a number, ...).
	UnsupportedOperation FaultKind = iota + 1
	// IncomparableOperands: the operation exists for the value's type but
	// not against the bound argument's type (text compared with a number).
	IncomparableOperands
)

func (k FaultKind) String() string {
	switch k {
	case UnsupportedOperation:
		return "unsupported_operation"
	case IncomparableOperands:
		return "incomparable_operands"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Fault of the same kind.
var (
	ErrUnsupportedOperation = errors.New("predicate: unsupported operation")
	ErrIncomparableOperands = errors.New("predicate: incomparable operands")
)

// Fault is returned by Predicate.Check when the value cannot support the
// operation the predicate requires. It is a defect signal, never a
// validation failure.
type Fault struct {
	Kind FaultKind
	// Op names the operation that was attempted ("compare", "size", ...).
	Op string
	// Left and Right are the operand type names. Right is empty for
	// UnsupportedOperation.
	Left  string
	Right string
	// Predicate and Field are filled in as the fault travels outward.
	Predicate string
	Field     string
}

// Unsupported builds an UnsupportedOperation fault for op on v.
func Unsupported(op string, v any) *Fault {
	return &Fault{Kind: UnsupportedOperation, Op: op, Left: TypeName(v)}
}

// Incomparable builds an IncomparableOperands fault for op between left and right.
func Incomparable(op string, left, right any) *Fault {
	return &Fault{Kind: IncomparableOperands, Op: op, Left: TypeName(left), Right: TypeName(right)}
}

// Diagnostic is the operation-level message without field/predicate context.
func (f *Fault) Diagnostic() string {
	if f.Kind == IncomparableOperands {
		return fmt.Sprintf("comparison of %s with %s failed", f.Left, f.Right)
	}
	return fmt.Sprintf("undefined operation %s for %s", f.Op, f.Left)
}

func (f *Fault) Error() string {
	b := &strings.Builder{}
	if f.Field != "" {
		fmt.Fprintf(b, "field %q: ", f.Field)
	}
	if f.Predicate != "" {
		fmt.Fprintf(b, "predicate %s: ", f.Predicate)
	}
	b.WriteString(f.Diagnostic())
	return b.String()
}

// Is matches the kind sentinels.
func (f *Fault) Is(target error) bool {
	switch target {
	case ErrUnsupportedOperation:
		return f.Kind == UnsupportedOperation
	case ErrIncomparableOperands:
		return f.Kind == IncomparableOperands
	}
	return false
}

// AsFault extracts a *Fault from err using errors.As.
func AsFault(err error) (*Fault, bool) {
	if err == nil {
		return nil, false
	}
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// TypeName renders the runtime type of v for diagnostics.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
