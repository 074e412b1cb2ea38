package predicate

import (
	"errors"
	"fmt"

	"github.com/reoring/validations/i18n"
)

// Predicate is a named, parameterized boolean check.
//
// Check runs against the raw value with no coercion and returns a *Fault
// when the value's type cannot support the operation. Message must depend
// only on the bound arguments: it is rendered for predicates that were
// never executed.
type Predicate interface {
	Name() string
	Check(v any, args ...any) (bool, error)
	Message(args ...any) string
}

// ArgValidator is implemented by predicates that validate their bound
// arguments once, at bind time.
type ArgValidator interface {
	ValidateArgs(args []any) error
}

// ErrInvalidArgs is returned by Bind when arguments are rejected.
var ErrInvalidArgs = errors.New("predicate: invalid arguments")

// CheckFunc implements Predicate.Check.
type CheckFunc func(v any, args []any) (bool, error)

// MessageFunc implements Predicate.Message.
type MessageFunc func(args []any) string

// Func adapts plain functions to Predicate.
type Func struct {
	name     string
	check    CheckFunc
	message  MessageFunc
	validate func(args []any) error
}

// Option configures a Func.
type Option func(*Func)

// WithArgs installs a bind-time argument validator.
func WithArgs(validate func(args []any) error) Option {
	return func(f *Func) { f.validate = validate }
}

// New builds a Predicate from functions. A nil message renders the i18n
// entry keyed by name with no data.
func New(name string, check CheckFunc, message MessageFunc, opts ...Option) *Func {
	f := &Func{name: Normalize(name), check: check, message: message}
	if f.message == nil {
		key := f.name
		f.message = func([]any) string { return i18n.T(key, nil) }
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Func) Name() string { return f.name }

func (f *Func) Check(v any, args ...any) (bool, error) { return f.check(v, args) }

func (f *Func) Message(args ...any) string { return f.message(args) }

func (f *Func) ValidateArgs(args []any) error {
	if f.validate == nil {
		return nil
	}
	return f.validate(args)
}

// Arity returns an argument validator accepting exactly n arguments.
func Arity(n int) func(args []any) error {
	return func(args []any) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d argument(s), got %d", ErrInvalidArgs, n, len(args))
		}
		return nil
	}
}

// Call is a predicate bound to its arguments. The zero value is not usable;
// obtain calls from Registry.Bind or Bind.
type Call struct {
	p    Predicate
	args []any
}

// Bind binds p to a private copy of args, validating them when p
// implements ArgValidator.
func Bind(p Predicate, args ...any) (Call, error) {
	if p == nil {
		return Call{}, fmt.Errorf("%w: nil predicate", ErrInvalidArgs)
	}
	cp := cloneArgs(args)
	if av, ok := p.(ArgValidator); ok {
		if err := av.ValidateArgs(cp); err != nil {
			return Call{}, fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	return Call{p: p, args: cp}, nil
}

// Name returns the bound predicate's name.
func (c Call) Name() string { return c.p.Name() }

// Predicate returns the bound predicate.
func (c Call) Predicate() Predicate { return c.p }

// Args returns a copy of the bound arguments.
func (c Call) Args() []any { return cloneArgs(c.args) }

// Check executes the predicate against v. Faults are annotated with the
// predicate name.
func (c Call) Check(v any) (bool, error) {
	ok, err := c.p.Check(v, c.args...)
	if err == nil {
		return ok, nil
	}
	if f, isFault := AsFault(err); isFault {
		annotated := *f
		if annotated.Predicate == "" {
			annotated.Predicate = c.p.Name()
		}
		return false, &annotated
	}
	return false, fmt.Errorf("predicate %s: %w", c.p.Name(), err)
}

// Message renders the failure message from the bound arguments only.
func (c Call) Message() string { return c.p.Message(c.args...) }

func (c Call) String() string {
	if len(c.args) == 0 {
		return c.p.Name() + "?"
	}
	return fmt.Sprintf("%s?(%s)", c.p.Name(), i18n.FormatValue(c.args))
}

func cloneArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = cloneValue(a)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
