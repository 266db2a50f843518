package journal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/petrijr/machina/pkg/api"
)

// Observer is an api.Observer that appends one Record per successful
// transition to a Store. Sequence numbers are assigned per instance,
// starting at 1.
//
// Store failures are logged and do not fail the step; the journal is a
// diagnostic trace, not the source of truth for the run.
type Observer struct {
	store  Store
	logger *slog.Logger

	mu   sync.Mutex
	seqs map[string]int
}

var _ api.Observer = (*Observer)(nil)

// NewObserver creates an Observer writing to store. If logger is nil,
// slog.Default() is used for reporting append failures.
func NewObserver(store Store, logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{
		store:  store,
		logger: logger,
		seqs:   make(map[string]int),
	}
}

func (o *Observer) OnTransition(inst api.Instance, from, to api.StateLabel, dataBefore any) {
	o.mu.Lock()
	o.seqs[inst.ID()]++
	seq := o.seqs[inst.ID()]
	o.mu.Unlock()

	rec := Record{
		InstanceID: inst.ID(),
		Machine:    inst.Machine().Name(),
		Seq:        seq,
		From:       from,
		To:         to,
		DataBefore: api.Render(dataBefore),
	}
	if err := o.store.Append(context.Background(), rec); err != nil {
		o.logger.Error("journal append failed",
			slog.String("instance_id", inst.ID()),
			slog.Any("error", err),
		)
	}
}

func (o *Observer) OnHalt(inst api.Instance) {
	// The final transition into the terminal label is already recorded;
	// drop the per-instance counter so long-lived observers don't leak.
	o.mu.Lock()
	delete(o.seqs, inst.ID())
	o.mu.Unlock()
}

func (o *Observer) OnStepFailed(inst api.Instance, err error) {}
