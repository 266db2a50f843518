package machina

import (
	"github.com/petrijr/machina/internal/engine"
	"github.com/petrijr/machina/pkg/api"
)

// Builder accumulates a machine definition:
//
//	machine, err := machina.Define("reducer").
//	    Ready("READY").
//	    Terminal("TERM").
//	    Transition("READY", "REDUCE", pairLeft).
//	    TransitionWith("REDUCE", "REDUCE", pairLeft, sumHead).
//	    TransitionWith("REDUCE", "TERM", single, machina.Identity).
//	    Build()
//
// Builder methods record problems (invalid labels, duplicate edges) rather
// than failing immediately; Build surfaces the first recorded problem, then
// runs structural validation. A Builder is single-use: Build seals it, and
// any later operation fails with ErrSealedBuilder.
type Builder struct {
	name        string
	ready       StateLabel
	terminal    StateLabel
	readySet    bool
	terminalSet bool
	rules       []api.Rule

	copyPolicy CopyPolicy
	postCheck  bool
	observer   Observer

	seen   map[[2]StateLabel]bool
	errs   []error
	sealed bool
}

// Define creates a new machine builder with the given name. The
// post-transition consistency check is enabled by default; see
// WithoutPostCheck.
func Define(name string) *Builder {
	return &Builder{
		name:      name,
		postCheck: true,
		seen:      make(map[[2]StateLabel]bool),
	}
}

// Name returns the machine name.
func (b *Builder) Name() string {
	return b.name
}

// Ready declares the distinguished initial label. Declaring it twice is
// allowed; the last declaration wins.
func (b *Builder) Ready(label StateLabel) *Builder {
	if b.guardOp() {
		return b
	}
	b.checkLabel(label)
	b.ready = label
	b.readySet = true
	return b
}

// Terminal declares the distinguished absorbing label. Declaring it twice is
// allowed; the last declaration wins.
func (b *Builder) Terminal(label StateLabel) *Builder {
	if b.guardOp() {
		return b
	}
	b.checkLabel(label)
	b.terminal = label
	b.terminalSet = true
	return b
}

// Transition declares a guarded transition with the identity transform.
// A nil guard matches unconditionally.
func (b *Builder) Transition(from, to StateLabel, guard Guard) *Builder {
	return b.TransitionWith(from, to, guard, nil)
}

// TransitionWith declares a guarded transition whose transform produces the
// data carried into the next state. A nil guard matches unconditionally; a
// nil transform passes the data through unchanged.
//
// At most one transition may exist per (from, to) pair; a second declaration
// is recorded as a DuplicateTransitionError and surfaced by Build.
func (b *Builder) TransitionWith(from, to StateLabel, guard Guard, transform Transform) *Builder {
	if b.guardOp() {
		return b
	}
	b.checkLabel(from)
	b.checkLabel(to)

	edge := [2]StateLabel{from, to}
	if b.seen[edge] {
		b.errs = append(b.errs, &DuplicateTransitionError{From: from, To: to})
		return b
	}
	b.seen[edge] = true

	b.rules = append(b.rules, api.Rule{
		From:      from,
		To:        to,
		Guard:     guard,
		Transform: transform,
	})
	return b
}

// CopyOnTransition switches the machine to the defensive copy policy: data
// is deep-copied (via encoding/gob) before every transform, so a failing
// transform can never corrupt the previously observed value. The default is
// MutateInPlace.
func (b *Builder) CopyOnTransition() *Builder {
	if b.guardOp() {
		return b
	}
	b.copyPolicy = api.CopyOnTransition
	return b
}

// WithoutPostCheck disables the post-transition consistency check that
// rejects transforms whose output no guard at the destination accepts.
// Disabling it trades early InvalidResultingState diagnostics for a
// NoTransitionMatches failure on the following step.
func (b *Builder) WithoutPostCheck() *Builder {
	if b.guardOp() {
		return b
	}
	b.postCheck = false
	return b
}

// Observe attaches an observer invoked on every successful transition, halt,
// and step failure. Without it, the machine runs silently.
func (b *Builder) Observe(obs Observer) *Builder {
	if b.guardOp() {
		return b
	}
	b.observer = obs
	return b
}

// Build validates the accumulated definition and, on success, compiles it
// into an immutable Machine and seals the builder.
//
// Failures, in order of precedence: any problem recorded during
// accumulation (invalid label, duplicate edge), then the structural checks:
// missing ready, missing terminal, degenerate machine, empty machine,
// unreachable-from-ready, transition-from-terminal, dangling state,
// unreachable terminal.
func (b *Builder) Build() (Machine, error) {
	if b.sealed {
		return nil, ErrSealedBuilder
	}
	b.sealed = true

	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	return engine.Compile(engine.Config{
		Name:        b.name,
		Ready:       b.ready,
		Terminal:    b.terminal,
		ReadySet:    b.readySet,
		TerminalSet: b.terminalSet,
		Rules:       b.rules,
		CopyPolicy:  b.copyPolicy,
		PostCheck:   b.postCheck,
		Observer:    b.observer,
	})
}

// MustBuild is like Build but panics on error.
// Useful for initialization in main().
func (b *Builder) MustBuild() Machine {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// Err returns the first problem recorded so far, or nil. It lets callers
// fail fast while assembling large machines.
func (b *Builder) Err() error {
	if len(b.errs) > 0 {
		return b.errs[0]
	}
	return nil
}

// guardOp records ErrSealedBuilder for operations on a sealed builder and
// reports whether the operation should be skipped.
func (b *Builder) guardOp() bool {
	if b.sealed {
		b.errs = append(b.errs, ErrSealedBuilder)
		return true
	}
	return false
}

func (b *Builder) checkLabel(label StateLabel) {
	if !label.IsValid() {
		b.errs = append(b.errs, &InvalidLabelError{Label: label})
	}
}
