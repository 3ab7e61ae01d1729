package auditlog

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore appends rows to the kyc_api_logs table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, row Row) error {
	query := `
		INSERT INTO kyc_api_logs (
			id, client_id, service, natural_key, vendor, endpoint,
			status_code, status, request_payload, response_payload,
			error_message, ip_address, user_agent, record_id, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
	`
	_, err := s.db.ExecContext(ctx, query,
		row.ID, row.ClientID, row.Service, row.NaturalKey, row.Vendor, row.Endpoint,
		row.StatusCode, row.Status, []byte(row.RequestPayload), []byte(row.ResponsePayload),
		row.ErrorMessage, row.IPAddress, row.UserAgent, row.RecordID, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit row: %w", err)
	}
	return nil
}
