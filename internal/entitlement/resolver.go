package entitlement

import (
	"context"
	"errors"
	"fmt"

	"kycgate/internal/catalog"
	"kycgate/pkg/platform/sentinel"
)

// Distinct error kinds so the consumer can pick response codes without this
// package knowing about HTTP.
var (
	// ErrServiceNotConfigured: the service name is not in the catalog.
	ErrServiceNotConfigured = errors.New("service not configured")

	// ErrEntitlementMissing: no entitlement row exists for (client, service).
	ErrEntitlementMissing = errors.New("cache window not configured for client")

	// ErrEntitlementDisabled: the row exists but the service is switched off
	// for this client.
	ErrEntitlementDisabled = errors.New("service is not permitted for client")
)

// Store reads entitlement rows. Implementations exclude soft-deleted rows.
type Store interface {
	// Find returns the entitlement for (client, service) or
	// sentinel.ErrNotFound.
	Find(ctx context.Context, clientID int64, serviceID catalog.ServiceID) (*Entitlement, error)
}

// Resolver verifies that a client may call a service and returns the cache
// retention window. Pure read; no side effects.
type Resolver struct {
	store Store
}

func NewResolver(store Store) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("entitlement store is required")
	}
	return &Resolver{store: store}, nil
}

// Resolve maps a service name to its ID and checks the client's entitlement.
func (r *Resolver) Resolve(ctx context.Context, clientID int64, serviceName string) (CacheWindow, error) {
	serviceID, ok := catalog.Lookup(serviceName)
	if !ok {
		return CacheWindow{}, fmt.Errorf("%s: %w", serviceName, ErrServiceNotConfigured)
	}

	ent, err := r.store.Find(ctx, clientID, serviceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return CacheWindow{}, ErrEntitlementMissing
		}
		return CacheWindow{}, fmt.Errorf("find entitlement: %w", err)
	}
	if !ent.Active {
		return CacheWindow{}, ErrEntitlementDisabled
	}

	return CacheWindow{ServiceID: serviceID, Days: ent.CacheDays}, nil
}
