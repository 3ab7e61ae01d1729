package entitlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kycgate/internal/catalog"
	"kycgate/pkg/platform/sentinel"
)

// PostgresStore reads entitlement rows from kyc_client_services.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Find(ctx context.Context, clientID int64, serviceID catalog.ServiceID) (*Entitlement, error) {
	query := `
		SELECT id, client_id, service_id, status, cache_days, created_at, deleted_at
		FROM kyc_client_services
		WHERE client_id = $1 AND service_id = $2 AND deleted_at IS NULL
	`
	var ent Entitlement
	err := s.db.QueryRowContext(ctx, query, clientID, int(serviceID)).Scan(
		&ent.ID, &ent.ClientID, &ent.ServiceID, &ent.Active, &ent.CacheDays,
		&ent.CreatedAt, &ent.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find entitlement: %w", err)
	}
	return &ent, nil
}
