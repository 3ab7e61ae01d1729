package vendors

import (
	"context"

	"kycgate/internal/catalog"
)

// PriorityStore lists vendor assignments for a client and service.
type PriorityStore interface {
	// ListForClientService returns non-deleted assignments sorted ascending
	// by (priority, vendor id). The secondary sort keeps iteration
	// deterministic when two rows share a priority number. An empty slice is
	// not an error; the engine reports it as "no vendors assigned".
	ListForClientService(ctx context.Context, clientID int64, serviceID catalog.ServiceID) ([]Assignment, error)
}
