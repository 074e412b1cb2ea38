package validations

import (
	"fmt"
	"strings"

	"github.com/reoring/validations/i18n"
	"github.com/reoring/validations/predicate"
)

// Rule is the per-field policy: presence, guard and an ordered predicate
// chain. Rules are immutable; build them with NewRule. The zero Rule is a
// Required presence check with no predicates.
type Rule struct {
	presence Presence
	guard    Guard
	calls    []predicate.Call
}

// NewRule validates and assembles a rule. A guard other than GuardNone
// requires at least one predicate.
func NewRule(p Presence, g Guard, calls ...predicate.Call) (Rule, error) {
	if !p.valid() {
		return Rule{}, fmt.Errorf("%w: %d", ErrInvalidPresence, int(p))
	}
	if !g.valid() {
		return Rule{}, fmt.Errorf("%w: %d", ErrInvalidGuard, int(g))
	}
	if g != GuardNone && len(calls) == 0 {
		return Rule{}, fmt.Errorf("%w (guard %s)", ErrEmptyGuardedChain, g)
	}
	for i, c := range calls {
		if c.Predicate() == nil {
			return Rule{}, fmt.Errorf("%w at position %d", ErrUnboundPredicate, i)
		}
	}
	return Rule{presence: p, guard: g, calls: append([]predicate.Call(nil), calls...)}, nil
}

// Presence returns the presence policy.
func (r Rule) Presence() Presence { return r.presence }

// Guard returns the guard strategy.
func (r Rule) Guard() Guard { return r.guard }

// Predicates returns a copy of the predicate chain.
func (r Rule) Predicates() []predicate.Call { return append([]predicate.Call(nil), r.calls...) }

func (r Rule) String() string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.String()
	}
	return fmt.Sprintf("%s.%s(%s)", r.presence, r.guard, strings.Join(names, ", "))
}

// evaluate produces the field's outcome. present/v come from the input.
//
//	absent  + Required -> "is missing" + every message, guard not consulted
//	absent  + Optional -> valid
//	present            -> guard, then the whole chain (no short-circuit)
func (r Rule) evaluate(present bool, v any) ([]string, error) {
	if !present {
		if r.presence == Optional {
			return nil, nil
		}
		return r.synthesize(i18n.T(i18n.KeyMissing, nil)), nil
	}
	switch r.guard.screen(v) {
	case skipValid:
		return nil, nil
	case skipBlank:
		return r.synthesize(i18n.T(i18n.KeyFilled, nil)), nil
	}
	var out []string
	for _, c := range r.calls {
		ok, err := c.Check(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = appendDistinct(out, c.Message())
		}
	}
	return out, nil
}

// synthesize renders lead followed by every predicate's message without
// executing any predicate.
func (r Rule) synthesize(lead string) []string {
	out := make([]string, 0, len(r.calls)+1)
	out = append(out, lead)
	for _, c := range r.calls {
		out = appendDistinct(out, c.Message())
	}
	return out
}

func appendDistinct(dst []string, msg string) []string {
	for _, m := range dst {
		if m == msg {
			return dst
		}
	}
	return append(dst, msg)
}
