// Package records persists canonical verification records and serves the
// cache-before-vendor lookup. Each service has its own table; the engine
// talks to every one of them through the same Store interface.
package records

import (
	"context"
	"time"

	"kycgate/internal/verify/models"
)

// Store is one service's record storage.
//
// FindFresh returns the most recent record for the natural key created
// within the window, or sentinel.ErrNotFound. A window of zero or less means
// caching is disabled for this client and the lookup always misses.
type Store interface {
	FindFresh(ctx context.Context, key string, window time.Duration) (models.Record, error)
	Save(ctx context.Context, rec models.Record) error
}
