package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kycgate/internal/platform/config"
	"kycgate/pkg/platform/sentinel"
)

// PostgresStore reads client rows from the shared client_management table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByAPIKey(ctx context.Context, apiKey string, env config.Environment) (*Client, error) {
	if apiKey == "" {
		return nil, sentinel.ErrNotFound
	}
	keyColumn := "uat_key"
	if env == config.EnvProduction {
		keyColumn = "production_key"
	}
	query := fmt.Sprintf(`
		SELECT id, company_name, contact_email, uat_key, production_key, created_at, deleted_at
		FROM client_management
		WHERE %s = $1 AND deleted_at IS NULL
	`, keyColumn)

	var c Client
	err := s.db.QueryRowContext(ctx, query, apiKey).Scan(
		&c.ID, &c.CompanyName, &c.ContactEmail, &c.UATKey, &c.ProductionKey,
		&c.CreatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find client by api key: %w", err)
	}
	return &c, nil
}
