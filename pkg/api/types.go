package api

import (
	"fmt"
)

// StateLabel names a state of a machine. Labels are compared by exact value
// equality and must match an identifier grammar: a letter followed by any
// number of letters, digits, or underscores.
type StateLabel string

// IsValid reports whether the label matches the identifier grammar.
func (l StateLabel) IsValid() bool {
	if len(l) == 0 {
		return false
	}
	for i, r := range l {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '_', r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (l StateLabel) String() string { return string(l) }

// Transform produces the data value carried into the next state. A transform
// may mutate its argument in place or return a fresh value; in either case the
// instance's data becomes the returned value.
type Transform func(data any) any

// Identity is the default transform: it passes the data through unchanged.
func Identity(data any) any { return data }

// Guard decides whether a transition applies to the current (label, data)
// pair. Guards must be pure and total: no side effects, no panics for any
// well-typed input.
//
// Explain returns a human-readable description of why the pair did not match.
// It is only consulted on mismatch, for diagnostics.
type Guard interface {
	Matches(label StateLabel, data any) bool
	Explain(label StateLabel, data any) string
}

// Rule is a single guarded transition between two states.
type Rule struct {
	From      StateLabel
	To        StateLabel
	Guard     Guard
	Transform Transform
}

// CopyPolicy controls how an instance treats its data across a transition.
type CopyPolicy int

const (
	// MutateInPlace hands the instance's data directly to transforms. It is
	// the fast default; transform authors must leave data valid on every
	// path, including failure paths.
	MutateInPlace CopyPolicy = iota

	// CopyOnTransition deep-copies the data before each transform, so a
	// failing transform can never corrupt the value observed before the
	// step. Costs an allocation per step and requires the data to be
	// gob-encodable.
	CopyOnTransition
)

// StepOutcome is the result of a single successful step (or of stepping a
// halted instance, in which case Halted is true and Data is the final value).
type StepOutcome struct {
	// Label is the state the instance is in after the step.
	Label StateLabel

	// Data is the post-transition data snapshot. With MutateInPlace it
	// aliases the instance's live value.
	Data any

	// Halted reports whether the instance has reached the terminal state.
	Halted bool
}

// Machine is a frozen, validated machine definition. It is immutable after
// construction and may be shared freely across goroutines; every call to
// Instantiate produces an independent instance.
type Machine interface {
	// Name returns the machine's name.
	Name() string

	// Ready returns the distinguished initial label.
	Ready() StateLabel

	// Terminal returns the distinguished absorbing label.
	Terminal() StateLabel

	// States returns every label mentioned by the machine's rules, in
	// first-mention order.
	States() []StateLabel

	// Instantiate binds the definition to one data value and returns a new
	// independent instance positioned at the ready label.
	Instantiate(data any) Instance
}

// Instance is one live machine execution bound to one owned data value.
//
// An Instance is not safe for concurrent use; drive it from a single
// goroutine or add external locking.
type Instance interface {
	// ID returns the unique identifier assigned at instantiation.
	ID() string

	// Machine returns the shared definition backing this instance.
	Machine() Machine

	// Current returns the label the instance is currently in.
	Current() StateLabel

	// Data returns the instance's current data value.
	Data() any

	// Halted reports whether the terminal label has been reached.
	Halted() bool

	// Step runs one dispatch cycle: it selects the first declared rule
	// leaving the current state whose guard accepts the current data,
	// applies its transform, and advances to the rule's destination.
	//
	// Stepping a halted instance is a no-op that returns an outcome with
	// Halted set. A run-time error (no rule matches, or the transform's
	// output fails the destination's guard set) is fatal to the instance:
	// every later Step returns the same error.
	Step() (StepOutcome, error)
}

// Render produces the diagnostic rendering of a data value used in error
// messages and journal records.
func Render(data any) string {
	return fmt.Sprintf("%+v", data)
}
