package machina

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/petrijr/machina/internal/journal"
	"github.com/petrijr/machina/pkg/api"
)

// TransitionRecord is one successful transition of one machine instance, as
// recorded by a Journal.
type TransitionRecord = journal.Record

// Journal wires a transition trace store to an Observer, so every
// successful transition of an observed machine is recorded and can be
// queried back by instance ID.
//
// Only run traces are stored; machine definitions are never serialized.
type Journal struct {
	obs   *journal.Observer
	store journal.Store
}

// NewMemoryJournal returns a Journal backed by a goroutine-safe in-memory
// store. Best for tests and local development.
func NewMemoryJournal() *Journal {
	store := journal.NewMemoryStore()
	return &Journal{
		obs:   journal.NewObserver(store, nil),
		store: store,
	}
}

// NewSQLiteJournal returns a Journal that persists transition records in the
// given SQLite database, creating its schema if needed.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:machina.db?_journal=WAL")
//	jrnl, err := machina.NewSQLiteJournal(db, nil)
//	machine, _ := machina.Define("order").Observe(jrnl.Observer())...Build()
func NewSQLiteJournal(db *sql.DB, logger *slog.Logger) (*Journal, error) {
	store, err := journal.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	return &Journal{
		obs:   journal.NewObserver(store, logger),
		store: store,
	}, nil
}

// Observer returns the api.Observer to attach via Builder.Observe (possibly
// combined with others via NewCompositeObserver).
func (j *Journal) Observer() api.Observer {
	return j.obs
}

// Trace returns the recorded transitions for one instance, in step order.
func (j *Journal) Trace(ctx context.Context, instanceID string) ([]TransitionRecord, error) {
	return j.store.List(ctx, instanceID)
}
