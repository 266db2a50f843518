// Package machina provides a small, embeddable finite-state-machine engine
// for Go.
//
// Machina is designed for programs that want to model a process as named
// states and guarded transitions, validate the model once, and then drive
// any number of independent executions through it one step at a time. It
// runs fully in-process, has no network surface, and integrates cleanly
// into existing codebases.
//
// # Core Concepts
//
// The Machina programming model is intentionally small:
//
//  1. Builder
//  2. Machine
//  3. Instance
//  4. Guard
//  5. Observer
//
// # Builder
//
// The Builder accumulates a machine definition: a distinguished ready
// (initial) label, a distinguished terminal (absorbing) label, and a set of
// guarded transitions. Build validates the definition and freezes it.
//
//	machine, err := machina.Define("traffic-light").
//	    Ready("RED").
//	    Terminal("OFF").
//	    Transition("RED", "GREEN", nil).
//	    Transition("GREEN", "RED", nil).
//	    Transition("RED", "OFF", machina.Data("switched off", isOff)).
//	    Build()
//
// Build rejects malformed machines with precisely named errors: a missing
// ready or terminal label, a degenerate machine whose ready and terminal
// coincide, an empty rule set, an unreachable terminal, a transition leaving
// the terminal state, a dangling state with no way out, or a duplicate
// (from, to) edge. Validation checks edge shape only; it deliberately does
// not prove global reachability from the ready label.
//
// # Machine
//
// A Machine is the frozen, validated definition. It is immutable, safe to
// share across goroutines, and acts as a factory: every call to Instantiate
// binds a fresh Instance to one data value.
//
// # Instance
//
// An Instance is one live execution. Step selects the first declared rule
// leaving the current state whose guard accepts the current data, applies
// the rule's transform, and advances; it halts permanently once the terminal
// label is reached. Run-time failures (no matching rule, or a transform
// whose output no destination guard accepts) carry the offending labels and
// a rendering of the data.
//
//	inst := machine.Instantiate(startData)
//	for !inst.Halted() {
//	    out, err := inst.Step()
//	    ...
//	}
//
// Instances are not goroutine-safe; drive each one from a single goroutine.
//
// # Guard
//
// A Guard is a pure predicate over the current (label, data) pair that can
// also explain a mismatch. Guards compose: And, Or, Not, label matchers,
// payload predicates, and typed predicates are provided.
//
// # Observer
//
// An Observer receives a callback on every successful transition (with the
// pre-transform data), on halt, and on step failure. Provided observers
// cover slog logging, counter metrics, fan-out composition, and a durable
// SQLite-backed transition journal; see also the promobs subpackage for
// Prometheus export.
//
// # Summary
//
// Machina's goal is a state-machine engine that feels like Go: declare the
// machine with the Builder, let Build validate it, share the Machine
// freely, and step each Instance deterministically until it halts.
//
// For runnable programs, see the /examples directory.
package machina
