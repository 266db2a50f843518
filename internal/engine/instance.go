package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/petrijr/machina/internal/codec"
	"github.com/petrijr/machina/pkg/api"
)

// instance is one live execution. It owns its data value for the duration of
// the run and must be driven from a single goroutine.
type instance struct {
	m       *machine
	id      string
	current api.StateLabel
	data    any
	halted  bool

	// fatal remembers the first run-time failure; the instance is unusable
	// afterward and every later Step returns it again.
	fatal error
}

var _ api.Instance = (*instance)(nil)

func newInstance(m *machine, data any) *instance {
	return &instance{
		m:       m,
		id:      uuid.NewString(),
		current: m.ready,
		data:    data,
	}
}

func (in *instance) ID() string              { return in.id }
func (in *instance) Machine() api.Machine    { return in.m }
func (in *instance) Current() api.StateLabel { return in.current }
func (in *instance) Data() any               { return in.data }
func (in *instance) Halted() bool            { return in.halted }

func (in *instance) Step() (api.StepOutcome, error) {
	if in.halted {
		// Idempotent no-op: no transform runs, data stays untouched.
		return api.StepOutcome{Label: in.current, Data: in.data, Halted: true}, nil
	}
	if in.fatal != nil {
		return api.StepOutcome{Label: in.current, Data: in.data}, in.fatal
	}

	m := in.m
	from := in.current

	// First declared rule whose guard accepts (current, data) wins.
	var rule *api.Rule
	var reasons []string
	for _, idx := range m.byFrom[from] {
		r := &m.rules[idx]
		if r.Guard.Matches(from, in.data) {
			rule = r
			break
		}
		reasons = append(reasons, r.Guard.Explain(from, in.data))
	}
	if rule == nil {
		err := &api.NoTransitionError{State: from, Data: in.data, Reasons: reasons}
		return in.fail(err)
	}

	dataBefore := in.data
	work := in.data
	if m.copyPolicy == api.CopyOnTransition {
		cloned, err := codec.Clone(work)
		if err != nil {
			return in.fail(fmt.Errorf("machina: copy data before transform %s -> %s: %w", from, rule.To, err))
		}
		work = cloned
	}

	next := rule.Transform(work)

	// A transform can produce data inconsistent with every guard leaving
	// the destination, which would otherwise dead-end the machine on the
	// next step with a less informative error. Catch it here instead.
	if m.postCheck && rule.To != m.terminal {
		accepted := false
		var rejections []string
		for _, idx := range m.byFrom[rule.To] {
			r := &m.rules[idx]
			if r.Guard.Matches(rule.To, next) {
				accepted = true
				break
			}
			rejections = append(rejections, r.Guard.Explain(rule.To, next))
		}
		if !accepted {
			err := &api.InvalidResultingStateError{
				From:   from,
				To:     rule.To,
				Prior:  dataBefore,
				New:    next,
				Reason: strings.Join(rejections, "; "),
			}
			return in.fail(err)
		}
	}

	in.data = next
	in.current = rule.To
	m.observer.OnTransition(in, from, rule.To, dataBefore)

	if in.current == m.terminal {
		in.halted = true
		m.observer.OnHalt(in)
	}

	return api.StepOutcome{Label: in.current, Data: in.data, Halted: in.halted}, nil
}

func (in *instance) fail(err error) (api.StepOutcome, error) {
	in.fatal = err
	in.m.observer.OnStepFailed(in, err)
	return api.StepOutcome{Label: in.current, Data: in.data}, err
}
