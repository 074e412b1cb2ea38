package validations

import "github.com/reoring/validations/predicate"

// guardDecision is what a guard decides for a present value.
type guardDecision int

const (
	runChain    guardDecision = iota // execute predicates for real
	skipValid                        // done, no messages
	skipBlank                        // done, "must be filled" + synthesized messages
)

// screen applies the guard to a present value. Only GuardFilled looks at
// blankness and only GuardMaybe looks at null; GuardNone always runs.
func (g Guard) screen(v any) guardDecision {
	switch g {
	case GuardFilled:
		if predicate.IsBlank(v) {
			return skipBlank
		}
	case GuardMaybe:
		if predicate.IsNull(v) {
			return skipValid
		}
	}
	return runChain
}
