package validations

import (
	"fmt"
	"strings"
)

// Input maps field names to arbitrary values. A missing key means the
// field is absent; a key holding nil is present with a null value.
type Input = map[string]any

// Presence controls whether a field's key must exist in the input.
type Presence int

const (
	Required Presence = iota // The key must be present.
	Optional                 // The key may be absent without error.
)

func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return fmt.Sprintf("presence(%d)", int(p))
	}
}

func (p Presence) valid() bool { return p == Required || p == Optional }

// ParsePresence parses "required" or "optional" (case-insensitive). An
// empty string means Required.
func ParsePresence(s string) (Presence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "required":
		return Required, nil
	case "optional":
		return Optional, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPresence, s)
	}
}

// Guard selects how a present value is screened before the predicate
// chain runs.
type Guard int

const (
	// GuardNone runs the chain directly; faults propagate.
	GuardNone Guard = iota
	// GuardFilled turns blank values (null, "", empty collections) into
	// "must be filled" plus every predicate's message, without executing.
	GuardFilled
	// GuardMaybe accepts null without executing; everything else runs.
	GuardMaybe
)

func (g Guard) String() string {
	switch g {
	case GuardNone:
		return "none"
	case GuardFilled:
		return "filled"
	case GuardMaybe:
		return "maybe"
	default:
		return fmt.Sprintf("guard(%d)", int(g))
	}
}

func (g Guard) valid() bool { return g >= GuardNone && g <= GuardMaybe }

// ParseGuard parses "none", "value", "filled" or "maybe" (case-insensitive).
// An empty string and "value" mean GuardNone.
func ParseGuard(s string) (Guard, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "value":
		return GuardNone, nil
	case "filled":
		return GuardFilled, nil
	case "maybe":
		return GuardMaybe, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidGuard, s)
	}
}
