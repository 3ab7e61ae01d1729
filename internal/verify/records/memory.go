package records

import (
	"context"
	"strings"
	"sync"
	"time"

	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/requestcontext"

	"kycgate/internal/verify/models"
)

// InMemoryStore keeps records in memory, newest first per natural key. It
// backs unit tests and dev mode; postgres stores are the production path.
type InMemoryStore struct {
	mu    sync.RWMutex
	byKey map[string][]models.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byKey: make(map[string][]models.Record)}
}

func (s *InMemoryStore) FindFresh(ctx context.Context, key string, window time.Duration) (models.Record, error) {
	if window <= 0 {
		return nil, sentinel.ErrNotFound
	}
	cutoff := requestcontext.Now(ctx).Add(-window)

	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.byKey[strings.ToUpper(key)]
	for i := len(recs) - 1; i >= 0; i-- {
		if !recs[i].CreatedTime().Before(cutoff) {
			return recs[i], nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Save(_ context.Context, rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToUpper(rec.NaturalKey())
	s.byKey[key] = append(s.byKey[key], rec)
	return nil
}
