package entitlement

import (
	"time"

	"kycgate/internal/catalog"
)

// Entitlement joins a client to a service it may call, with the cache policy
// attached. An absent row means the service is unconfigured for that client,
// which callers must distinguish from a present-but-inactive row.
type Entitlement struct {
	ID        int64
	ClientID  int64
	ServiceID catalog.ServiceID
	Active    bool
	CacheDays int
	CreatedAt time.Time
	DeletedAt *time.Time
}

// CacheWindow is what the resolver hands back to the engine: the resolved
// service plus the retention window for cache lookups.
type CacheWindow struct {
	ServiceID catalog.ServiceID
	Days      int
}

// Duration converts the day-granular window to a time.Duration. Zero days
// means "never serve from cache".
func (w CacheWindow) Duration() time.Duration {
	return time.Duration(w.Days) * 24 * time.Hour
}
