package engine

import (
	"github.com/petrijr/machina/pkg/api"
)

// validate enforces the structural invariants of a candidate definition.
// The checks run in a fixed order and the first violation wins, so callers
// get stable, predictable failures.
//
// These are edge-shape checks only: a state cluster that is mutually
// reachable but never reachable from the ready label still passes. Full
// reachability analysis is intentionally out of scope; validation asserts
// local well-formedness, not a global traversal proof.
func validate(cfg Config) error {
	if !cfg.ReadySet {
		return api.ErrMissingReady
	}
	if !cfg.TerminalSet {
		return api.ErrMissingTerminal
	}
	if cfg.Ready == cfg.Terminal {
		return api.ErrDegenerateMachine
	}
	if len(cfg.Rules) == 0 {
		return api.ErrEmptyMachine
	}

	fromReady := false
	fromTerminal := false
	intoTerminal := false
	sources := make(map[api.StateLabel]bool, len(cfg.Rules))

	for _, r := range cfg.Rules {
		if r.From == cfg.Ready {
			fromReady = true
		}
		if r.From == cfg.Terminal {
			fromTerminal = true
		}
		if r.To == cfg.Terminal {
			intoTerminal = true
		}
		sources[r.From] = true
	}

	if !fromReady {
		return api.ErrUnreachableFromReady
	}
	// Terminal is absorbing.
	if fromTerminal {
		return api.ErrTransitionFromTerminal
	}

	// Every non-terminal destination must itself be some rule's source,
	// otherwise the machine dead-ends there.
	for _, r := range cfg.Rules {
		if r.To == cfg.Terminal {
			continue
		}
		if !sources[r.To] {
			return &api.DanglingStateError{Label: r.To}
		}
	}

	if !intoTerminal {
		return api.ErrTerminalUnreachable
	}

	return nil
}
