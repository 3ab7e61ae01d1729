package vendors

import (
	"context"
	"sort"
	"sync"

	"kycgate/internal/catalog"
)

// InMemoryPriorityStore backs vendor priorities for dev servers and tests.
type InMemoryPriorityStore struct {
	mu   sync.RWMutex
	rows []Assignment
}

func NewInMemoryPriorityStore() *InMemoryPriorityStore {
	return &InMemoryPriorityStore{}
}

// Put appends an assignment row.
func (s *InMemoryPriorityStore) Put(a Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, a)
}

func (s *InMemoryPriorityStore) ListForClientService(_ context.Context, clientID int64, serviceID catalog.ServiceID) ([]Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Assignment
	for _, a := range s.rows {
		if a.DeletedAt != nil || a.Vendor.DeletedAt != nil {
			continue
		}
		if a.ClientID == clientID && a.ServiceID == serviceID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Vendor.ID < out[j].Vendor.ID
	})
	return out, nil
}
