// Package journal records successful machine transitions in an append-only
// store so a run can be diagnosed after the fact without re-running it.
// Only run traces are persisted here; machine definitions are never
// serialized.
package journal

import (
	"context"
	"time"

	"github.com/petrijr/machina/pkg/api"
)

// Record is one successful transition of one machine instance.
type Record struct {
	InstanceID string
	Machine    string
	Seq        int
	From       api.StateLabel
	To         api.StateLabel
	DataBefore string
	At         time.Time
}

// Store is an append-only transition trace store.
type Store interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context, instanceID string) ([]Record, error)
}

// NoopStore discards all records.
type NoopStore struct{}

func (NoopStore) Append(ctx context.Context, rec Record) error { return nil }
func (NoopStore) List(ctx context.Context, instanceID string) ([]Record, error) {
	return nil, nil
}
