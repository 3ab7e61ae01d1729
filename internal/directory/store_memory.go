package directory

import (
	"context"
	"sync"

	"kycgate/internal/platform/config"
	"kycgate/pkg/platform/sentinel"
)

// InMemoryStore backs the client directory for dev servers and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	clients map[int64]*Client
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{clients: make(map[int64]*Client)}
}

// Put inserts or replaces a client row.
func (s *InMemoryStore) Put(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *client
	s.clients[client.ID] = &cp
}

func (s *InMemoryStore) FindByAPIKey(_ context.Context, apiKey string, env config.Environment) (*Client, error) {
	if apiKey == "" {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.DeletedAt != nil {
			continue
		}
		if c.KeyFor(env) == apiKey {
			cp := *c
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
