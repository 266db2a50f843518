// Package engine implements the transition-matching core: compilation of a
// validated rule set into a dispatch table, and the stepping protocol that
// drives a machine instance from its ready label to its terminal label.
package engine

import (
	"github.com/petrijr/machina/pkg/api"
)

// Config describes a candidate machine definition handed over by the
// builder. ReadySet/TerminalSet distinguish "never declared" from a declared
// empty label, so validation can report the right failure.
type Config struct {
	Name        string
	Ready       api.StateLabel
	Terminal    api.StateLabel
	ReadySet    bool
	TerminalSet bool
	Rules       []api.Rule

	CopyPolicy api.CopyPolicy
	PostCheck  bool
	Observer   api.Observer
}

// machine is a compiled, frozen definition. It is never mutated after
// Compile returns, which is what makes it safe to share across goroutines.
type machine struct {
	name     string
	ready    api.StateLabel
	terminal api.StateLabel

	// rules keeps declaration order; byFrom indexes into it per source
	// label, preserving that order so first-declared wins on ties.
	rules  []api.Rule
	byFrom map[api.StateLabel][]int
	states []api.StateLabel

	copyPolicy api.CopyPolicy
	postCheck  bool
	observer   api.Observer
}

var _ api.Machine = (*machine)(nil)

// Compile validates cfg and, on success, groups its rules by source label
// into the dispatch table used at step time.
func Compile(cfg Config) (api.Machine, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}

	m := &machine{
		name:       cfg.Name,
		ready:      cfg.Ready,
		terminal:   cfg.Terminal,
		rules:      make([]api.Rule, len(cfg.Rules)),
		byFrom:     make(map[api.StateLabel][]int),
		copyPolicy: cfg.CopyPolicy,
		postCheck:  cfg.PostCheck,
		observer:   obs,
	}
	copy(m.rules, cfg.Rules)

	seen := make(map[api.StateLabel]bool)
	mention := func(l api.StateLabel) {
		if !seen[l] {
			seen[l] = true
			m.states = append(m.states, l)
		}
	}

	for i, r := range m.rules {
		if r.Transform == nil {
			m.rules[i].Transform = api.Identity
		}
		if r.Guard == nil {
			m.rules[i].Guard = api.Always()
		}
		m.byFrom[r.From] = append(m.byFrom[r.From], i)
		mention(r.From)
		mention(r.To)
	}

	return m, nil
}

func (m *machine) Name() string             { return m.name }
func (m *machine) Ready() api.StateLabel    { return m.ready }
func (m *machine) Terminal() api.StateLabel { return m.terminal }

func (m *machine) States() []api.StateLabel {
	out := make([]api.StateLabel, len(m.states))
	copy(out, m.states)
	return out
}

func (m *machine) Instantiate(data any) api.Instance {
	return newInstance(m, data)
}
