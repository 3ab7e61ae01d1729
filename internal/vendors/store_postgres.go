package vendors

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kycgate/internal/catalog"
)

// PostgresPriorityStore joins kyc_vendor_priority against vendor_management.
type PostgresPriorityStore struct {
	db *sql.DB
}

func NewPostgresPriorityStore(db *sql.DB) *PostgresPriorityStore {
	return &PostgresPriorityStore{db: db}
}

func (s *PostgresPriorityStore) ListForClientService(ctx context.Context, clientID int64, serviceID catalog.ServiceID) ([]Assignment, error) {
	query := `
		SELECT
			p.id, p.client_id, p.service_id, p.priority, p.created_at, p.deleted_at,
			v.id, v.name, v.display_name,
			v.uat_base_url, v.prod_base_url, v.uat_key, v.production_key,
			v.timeout_seconds, v.created_at, v.deleted_at
		FROM kyc_vendor_priority p
		JOIN vendor_management v ON v.id = p.vendor_id
		WHERE p.client_id = $1
		  AND p.service_id = $2
		  AND p.deleted_at IS NULL
		  AND v.deleted_at IS NULL
		ORDER BY p.priority ASC, v.id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, clientID, int(serviceID))
	if err != nil {
		return nil, fmt.Errorf("list vendor priorities: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		var timeoutSeconds int
		if err := rows.Scan(
			&a.ID, &a.ClientID, &a.ServiceID, &a.Priority, &a.CreatedAt, &a.DeletedAt,
			&a.Vendor.ID, &a.Vendor.Name, &a.Vendor.DisplayName,
			&a.Vendor.UATBaseURL, &a.Vendor.ProdBaseURL, &a.Vendor.UATKey, &a.Vendor.ProductionKey,
			&timeoutSeconds, &a.Vendor.CreatedAt, &a.Vendor.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vendor priority: %w", err)
		}
		a.Vendor.Timeout = time.Duration(timeoutSeconds) * time.Second
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendor priorities: %w", err)
	}
	return out, nil
}
