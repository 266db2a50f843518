package journal

import (
	"context"
	"sync"
)

// MemoryStore is a goroutine-safe, non-durable Store backed by a map.
// Best for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string][]Record
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recs: make(map[string][]Record),
	}
}

func (s *MemoryStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs[rec.InstanceID] = append(s.recs[rec.InstanceID], rec)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, instanceID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.recs[instanceID]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out, nil
}
