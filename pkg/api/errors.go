package api

import (
	"errors"
	"fmt"
)

// Definition-time errors. These are surfaced synchronously from Build and
// indicate a programming mistake in the machine's declaration; none of them
// is retryable.
var (
	// ErrMissingReady means no ready label was declared.
	ErrMissingReady = errors.New("machina: ready state not set")

	// ErrMissingTerminal means no terminal label was declared.
	ErrMissingTerminal = errors.New("machina: terminal state not set")

	// ErrDegenerateMachine means ready and terminal are the same label.
	ErrDegenerateMachine = errors.New("machina: ready and terminal states are identical")

	// ErrEmptyMachine means the definition declares no transitions at all.
	ErrEmptyMachine = errors.New("machina: no transitions declared")

	// ErrUnreachableFromReady means no transition leaves the ready state.
	ErrUnreachableFromReady = errors.New("machina: no transition leaves the ready state")

	// ErrTransitionFromTerminal means a transition leaves the terminal
	// state; terminal is absorbing.
	ErrTransitionFromTerminal = errors.New("machina: transition declared from the terminal state")

	// ErrTerminalUnreachable means no transition enters the terminal state.
	ErrTerminalUnreachable = errors.New("machina: no transition enters the terminal state")

	// ErrSealedBuilder is recorded when a builder operation is used after
	// Build sealed the definition; the operation is meaningless outside an
	// active build.
	ErrSealedBuilder = errors.New("machina: builder used after Build")
)

// InvalidLabelError reports a label that does not match the identifier
// grammar (a letter followed by letters, digits, or underscores).
type InvalidLabelError struct {
	Label StateLabel
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("machina: invalid state label %q", string(e.Label))
}

// DanglingStateError reports a non-terminal state that appears as some rule's
// destination but is itself the source of no rule.
type DanglingStateError struct {
	Label StateLabel
}

func (e *DanglingStateError) Error() string {
	return fmt.Sprintf("machina: dangling state %s has no outgoing transitions", e.Label)
}

// DuplicateTransitionError reports a second declaration for a (from, to) pair
// that was already registered. Two rules sharing the same endpoints are a
// modeling defect, not something to resolve by priority.
type DuplicateTransitionError struct {
	From StateLabel
	To   StateLabel
}

func (e *DuplicateTransitionError) Error() string {
	return fmt.Sprintf("machina: duplicate transition %s -> %s", e.From, e.To)
}

// NoTransitionError is returned by Step when no declared rule leaving the
// current state accepts the current data.
type NoTransitionError struct {
	State StateLabel
	Data  any

	// Reasons holds the Explain output of every rejecting guard, in
	// declaration order.
	Reasons []string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("machina: no transition matches state %s with data %s", e.State, Render(e.Data))
}

// InvalidResultingStateError is returned by Step when a transform's output is
// rejected by every guard leaving the destination state. Without this check
// the machine would silently dead-end on the next step with a less
// informative error.
type InvalidResultingStateError struct {
	From   StateLabel
	To     StateLabel
	Prior  any
	New    any
	Reason string
}

func (e *InvalidResultingStateError) Error() string {
	return fmt.Sprintf("machina: transition %s -> %s produced data %s not accepted by any guard leaving %s (prior data %s): %s",
		e.From, e.To, Render(e.New), e.To, Render(e.Prior), e.Reason)
}

// IsNoTransition returns the offending state label and true if err indicates
// that no rule matched during a step.
func IsNoTransition(err error) (StateLabel, bool) {
	var e *NoTransitionError
	if errors.As(err, &e) {
		return e.State, true
	}
	return "", false
}

// IsDanglingState returns the dangling label and true if err is a
// DanglingStateError.
func IsDanglingState(err error) (StateLabel, bool) {
	var e *DanglingStateError
	if errors.As(err, &e) {
		return e.Label, true
	}
	return "", false
}

// IsDuplicateTransition returns the offending edge and true if err is a
// DuplicateTransitionError.
func IsDuplicateTransition(err error) (from, to StateLabel, ok bool) {
	var e *DuplicateTransitionError
	if errors.As(err, &e) {
		return e.From, e.To, true
	}
	return "", "", false
}
