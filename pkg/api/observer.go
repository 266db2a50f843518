package api

import (
	"log/slog"
	"sync/atomic"
)

// Observer receives callbacks from a running machine instance for logging and
// metrics. It is the diagnostics hook: disabled (Noop) unless explicitly
// configured on the builder.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay stepping.
type Observer interface {
	// OnTransition is called after every successful transition, with the
	// data value as it was before the transform ran.
	OnTransition(inst Instance, from, to StateLabel, dataBefore any)

	// OnHalt is called once when an instance reaches the terminal label.
	OnHalt(inst Instance)

	// OnStepFailed is called when a step fails with a run-time error
	// (no matching transition, or an invalid resulting state).
	OnStepFailed(inst Instance, err error)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnTransition(inst Instance, from, to StateLabel, dataBefore any) {}
func (NoopObserver) OnHalt(inst Instance)                                            {}
func (NoopObserver) OnStepFailed(inst Instance, err error)                           {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnTransition(inst Instance, from, to StateLabel, dataBefore any) {
	for _, o := range c.observers {
		o.OnTransition(inst, from, to, dataBefore)
	}
}

func (c *CompositeObserver) OnHalt(inst Instance) {
	for _, o := range c.observers {
		o.OnHalt(inst)
	}
}

func (c *CompositeObserver) OnStepFailed(inst Instance, err error) {
	for _, o := range c.observers {
		o.OnStepFailed(inst, err)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs transition lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnTransition(inst Instance, from, to StateLabel, dataBefore any) {
	o.Logger.Debug("transition",
		slog.String("machine", inst.Machine().Name()),
		slog.String("instance_id", inst.ID()),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("data_before", Render(dataBefore)),
	)
}

func (o *LoggingObserver) OnHalt(inst Instance) {
	o.Logger.Info("halted",
		slog.String("machine", inst.Machine().Name()),
		slog.String("instance_id", inst.ID()),
		slog.String("terminal", string(inst.Current())),
	)
}

func (o *LoggingObserver) OnStepFailed(inst Instance, err error) {
	o.Logger.Error("step_failed",
		slog.String("machine", inst.Machine().Name()),
		slog.String("instance_id", inst.ID()),
		slog.String("state", string(inst.Current())),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters over transitions, halts, and step
// failures. It implements Observer, and can be combined with LoggingObserver
// via NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	transitions atomic.Int64
	halts       atomic.Int64
	stepFailed  atomic.Int64
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	Transitions int64
	Halts       int64
	StepsFailed int64
}

func (m *BasicMetrics) OnTransition(inst Instance, from, to StateLabel, dataBefore any) {
	m.transitions.Add(1)
}

func (m *BasicMetrics) OnHalt(inst Instance) {
	m.halts.Add(1)
}

func (m *BasicMetrics) OnStepFailed(inst Instance, err error) {
	m.stepFailed.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	return BasicMetricsSnapshot{
		Transitions: m.transitions.Load(),
		Halts:       m.halts.Load(),
		StepsFailed: m.stepFailed.Load(),
	}
}
