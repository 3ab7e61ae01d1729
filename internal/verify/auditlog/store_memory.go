package auditlog

import (
	"context"
	"sync"
)

// InMemoryStore collects rows for tests and dev mode.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows []Row
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return nil
}

// Rows returns a copy of everything appended so far, in order.
func (s *InMemoryStore) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}
