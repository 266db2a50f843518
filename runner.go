package machina

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxSteps bounds RunToHalt so a machine with an accidental cycle
// cannot spin forever.
const DefaultMaxSteps = 10_000

// ErrStepLimit is wrapped in the error returned when a run exceeds its step
// bound before halting.
var ErrStepLimit = errors.New("machina: step limit reached before halt")

// Runner drives a machine instance to its terminal state.
//
// Each step stays synchronous and atomic; the context is only consulted
// between steps, so cancellation never interrupts a transform mid-flight.
type Runner struct {
	// MaxSteps bounds the run; 0 means DefaultMaxSteps.
	MaxSteps int
}

// RunToHalt steps inst until it halts, using the default step bound.
// It returns the sequence of labels produced, one per successful step.
func RunToHalt(ctx context.Context, inst Instance) ([]StateLabel, error) {
	return Runner{}.Run(ctx, inst)
}

// Run steps inst until it halts, the context is cancelled, or the step
// bound is exceeded. The returned trace holds the label after each
// successful step, in order; on error the trace covers the steps that did
// complete.
func (r Runner) Run(ctx context.Context, inst Instance) ([]StateLabel, error) {
	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	var trace []StateLabel
	for !inst.Halted() {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		if len(trace) >= maxSteps {
			return trace, fmt.Errorf("%w (%d steps, machine %s, state %s)",
				ErrStepLimit, maxSteps, inst.Machine().Name(), inst.Current())
		}

		out, err := inst.Step()
		if err != nil {
			return trace, err
		}
		trace = append(trace, out.Label)
	}
	return trace, nil
}
