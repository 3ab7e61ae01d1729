package directory

import (
	"context"

	"kycgate/internal/platform/config"
)

// Store is the Client Directory lookup used on every request. Implementations
// must only return non-deleted clients.
type Store interface {
	// FindByAPIKey resolves an API key to exactly one active client,
	// matching the environment-appropriate key column. Returns
	// sentinel.ErrNotFound (wrapped) when no client matches.
	FindByAPIKey(ctx context.Context, apiKey string, env config.Environment) (*Client, error)
}
