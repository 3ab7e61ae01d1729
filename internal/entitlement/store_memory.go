package entitlement

import (
	"context"
	"sync"

	"kycgate/internal/catalog"
	"kycgate/pkg/platform/sentinel"
)

type key struct {
	clientID  int64
	serviceID catalog.ServiceID
}

// InMemoryStore backs entitlements for dev servers and tests.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[key]*Entitlement
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[key]*Entitlement)}
}

// Put inserts or replaces an entitlement row.
func (s *InMemoryStore) Put(ent *Entitlement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ent
	s.rows[key{ent.ClientID, ent.ServiceID}] = &cp
}

func (s *InMemoryStore) Find(_ context.Context, clientID int64, serviceID catalog.ServiceID) (*Entitlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ent, ok := s.rows[key{clientID, serviceID}]
	if !ok || ent.DeletedAt != nil {
		return nil, sentinel.ErrNotFound
	}
	cp := *ent
	return &cp, nil
}
