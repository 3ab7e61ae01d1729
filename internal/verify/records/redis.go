package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"kycgate/internal/platform/redis"
	"kycgate/internal/verify/models"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/requestcontext"
)

// CachedStore layers a Redis look-aside cache over a backing Store. Redis
// failures degrade to the backing store; they never fail a verification.
type CachedStore struct {
	inner   Store
	client  *redis.Client
	service string
	decode  func([]byte) (models.Record, error)
	logger  *slog.Logger
}

// NewCachedStore wraps inner with Redis. decode rebuilds the service's
// concrete record type from cached JSON.
func NewCachedStore(inner Store, client *redis.Client, service string, decode func([]byte) (models.Record, error), logger *slog.Logger) (*CachedStore, error) {
	if inner == nil {
		return nil, errors.New("records: inner store is required")
	}
	if client == nil {
		return nil, errors.New("records: redis client is required")
	}
	if decode == nil {
		return nil, errors.New("records: decode func is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedStore{
		inner:   inner,
		client:  client,
		service: service,
		decode:  decode,
		logger:  logger,
	}, nil
}

func (s *CachedStore) cacheKey(key string) string {
	return fmt.Sprintf("kycgate:records:%s:%s", s.service, strings.ToUpper(key))
}

func (s *CachedStore) FindFresh(ctx context.Context, key string, window time.Duration) (models.Record, error) {
	if window <= 0 {
		return nil, sentinel.ErrNotFound
	}

	raw, err := s.client.Get(ctx, s.cacheKey(key)).Bytes()
	switch {
	case err == nil:
		rec, decErr := s.decode(raw)
		if decErr == nil && !rec.CreatedTime().Before(requestcontext.Now(ctx).Add(-window)) {
			return rec, nil
		}
		if decErr != nil {
			s.logger.Warn("records: corrupt cache entry", "service", s.service, "error", decErr)
		}
	case errors.Is(err, goredis.Nil):
		// fall through to the backing store
	default:
		s.logger.Warn("records: redis lookup failed", "service", s.service, "error", err)
	}

	rec, err := s.inner.FindFresh(ctx, key, window)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, rec, window)
	return rec, nil
}

func (s *CachedStore) Save(ctx context.Context, rec models.Record) error {
	if err := s.inner.Save(ctx, rec); err != nil {
		return err
	}
	s.fill(ctx, rec, 0)
	return nil
}

// fill writes a record into Redis. The TTL follows the caller's window when
// known; records written on Save keep a day so the first cached read can set
// freshness itself.
func (s *CachedStore) fill(ctx context.Context, rec models.Record, window time.Duration) {
	ttl := window
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warn("records: marshal for cache failed", "service", s.service, "error", err)
		return
	}
	if err := s.client.Set(ctx, s.cacheKey(rec.NaturalKey()), payload, ttl).Err(); err != nil {
		s.logger.Warn("records: redis fill failed", "service", s.service, "error", err)
	}
}
