package predicate

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// celCostLimit bounds evaluation of a single expression.
const celCostLimit = 1000000

type celPredicate struct {
	once     sync.Once
	env      *cel.Env
	envErr   error
	programs sync.Map // expression -> cel.Program
}

// Satisfies returns the "satisfies" predicate. Its bound argument is a CEL
// expression over the variable `value` that must evaluate to true, e.g.
// `value % 2 == 0` or `value.startsWith("sk_")`. Expressions compile once
// at bind time; evaluation errors fault with UnsupportedOperation.
func Satisfies() Predicate { return &celPredicate{} }

func (p *celPredicate) Name() string { return "satisfies" }

func (p *celPredicate) Message(args ...any) string { return templated("satisfies", "expr")(args) }

func (p *celPredicate) ValidateArgs(args []any) error {
	if err := Arity(1)(args); err != nil {
		return err
	}
	_, err := p.program(args[0])
	return err
}

func (p *celPredicate) Check(v any, args ...any) (bool, error) {
	if err := checkArity(args, 1); err != nil {
		return false, err
	}
	prg, err := p.program(args[0])
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(map[string]any{"value": celValue(v)})
	if err != nil {
		return false, Unsupported("satisfies", v)
	}
	b, ok := out.Value().(bool)
	return ok && b, nil
}

func (p *celPredicate) environment() (*cel.Env, error) {
	p.once.Do(func() {
		p.env, p.envErr = cel.NewEnv(cel.Variable("value", cel.DynType))
	})
	return p.env, p.envErr
}

func (p *celPredicate) program(arg any) (cel.Program, error) {
	expr, ok := arg.(string)
	if !ok || expr == "" {
		return nil, fmt.Errorf("%w: expression must be a non-empty string, got %v", ErrInvalidArgs, arg)
	}
	if prg, ok := p.programs.Load(expr); ok {
		return prg.(cel.Program), nil
	}
	env, err := p.environment()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: compile error: %w", ErrInvalidArgs, issues.Err())
	}
	prg, err := env.Program(ast, cel.CostLimit(celCostLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: program creation error: %w", ErrInvalidArgs, err)
	}
	p.programs.Store(expr, prg)
	return prg, nil
}

// celValue rewrites json.Number leaves into int64/float64, the numeric
// representations CEL adapts natively.
func celValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = celValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = celValue(e)
		}
		return out
	default:
		return v
	}
}
