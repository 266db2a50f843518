// Package promobs exports machine transition activity as Prometheus metrics.
// It lives in its own package so the core library does not pull the
// Prometheus client into every consumer.
package promobs

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/petrijr/machina/pkg/api"
)

// Observer is an api.Observer backed by Prometheus counters.
type Observer struct {
	transitions *prometheus.CounterVec
	halts       *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

var _ api.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors with reg. If reg is
// nil, prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &Observer{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "machina_transitions_total",
				Help: "Total number of successful transitions",
			},
			[]string{"machine", "from", "to"},
		),
		halts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "machina_halts_total",
				Help: "Total number of instances that reached the terminal state",
			},
			[]string{"machine"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "machina_step_failures_total",
				Help: "Total number of failed steps",
			},
			[]string{"machine"},
		),
	}

	for _, c := range []prometheus.Collector{o.transitions, o.halts, o.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MustNew is like New but panics on registration errors.
// Useful for initialization in main().
func MustNew(reg prometheus.Registerer) *Observer {
	o, err := New(reg)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Observer) OnTransition(inst api.Instance, from, to api.StateLabel, dataBefore any) {
	o.transitions.WithLabelValues(inst.Machine().Name(), string(from), string(to)).Inc()
}

func (o *Observer) OnHalt(inst api.Instance) {
	o.halts.WithLabelValues(inst.Machine().Name()).Inc()
}

func (o *Observer) OnStepFailed(inst api.Instance, err error) {
	o.failures.WithLabelValues(inst.Machine().Name()).Inc()
}
