//go:build integration

package containers

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer wraps a testcontainers Postgres instance with the gateway
// schema applied and an open connection pool.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("kycgate"),
		tcpostgres.WithUsername("kycgate"),
		tcpostgres.WithPassword("kycgate"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// Truncate empties the named tables. Use between tests for isolation.
func (p *PostgresContainer) Truncate(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
			return err
		}
	}
	return nil
}

const schema = `
CREATE TABLE client_management (
	id             BIGSERIAL PRIMARY KEY,
	company_name   TEXT NOT NULL,
	contact_email  TEXT NOT NULL DEFAULT '',
	uat_key        TEXT NOT NULL,
	production_key TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at     TIMESTAMPTZ
);

CREATE TABLE kyc_client_services (
	id         BIGSERIAL PRIMARY KEY,
	client_id  BIGINT NOT NULL REFERENCES client_management (id),
	service_id INT NOT NULL,
	status     BOOLEAN NOT NULL DEFAULT true,
	cache_days INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at TIMESTAMPTZ
);

CREATE TABLE vendor_management (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	display_name    TEXT NOT NULL DEFAULT '',
	uat_base_url    TEXT NOT NULL DEFAULT '',
	prod_base_url   TEXT NOT NULL DEFAULT '',
	uat_key         TEXT NOT NULL DEFAULT '',
	production_key  TEXT NOT NULL DEFAULT '',
	timeout_seconds INT NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at      TIMESTAMPTZ
);

CREATE TABLE kyc_vendor_priority (
	id         BIGSERIAL PRIMARY KEY,
	client_id  BIGINT NOT NULL REFERENCES client_management (id),
	service_id INT NOT NULL,
	vendor_id  BIGINT NOT NULL REFERENCES vendor_management (id),
	priority   INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at TIMESTAMPTZ
);

CREATE TABLE pan_details (
	id             UUID PRIMARY KEY,
	request_id     TEXT NOT NULL DEFAULT '',
	client_ref     TEXT NOT NULL DEFAULT '',
	pan_number     TEXT NOT NULL,
	full_name      TEXT NOT NULL DEFAULT '',
	first_name     TEXT NOT NULL DEFAULT '',
	middle_name    TEXT NOT NULL DEFAULT '',
	last_name      TEXT NOT NULL DEFAULT '',
	gender         TEXT NOT NULL DEFAULT '',
	dob            TEXT NOT NULL DEFAULT '',
	aadhaar_linked BOOLEAN,
	masked_aadhaar TEXT NOT NULL DEFAULT '',
	phone_number   TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	pan_status     TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	issue_date     TEXT NOT NULL DEFAULT '',
	address_line_1 TEXT NOT NULL DEFAULT '',
	address_line_2 TEXT NOT NULL DEFAULT '',
	street_name    TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL DEFAULT '',
	pin_code       TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL DEFAULT '',
	full_address   TEXT NOT NULL DEFAULT '',
	vendor         TEXT NOT NULL,
	raw_response   JSONB,
	created_by     BIGINT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX idx_pan_details_lookup ON pan_details (pan_number, created_at DESC);

CREATE TABLE voter_details (
	id          UUID PRIMARY KEY,
	natural_key TEXT NOT NULL,
	vendor      TEXT NOT NULL,
	record      JSONB NOT NULL,
	created_by  BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX idx_voter_details_lookup ON voter_details (natural_key, created_at DESC);

CREATE TABLE electricity_bills (
	id          UUID PRIMARY KEY,
	natural_key TEXT NOT NULL,
	vendor      TEXT NOT NULL,
	record      JSONB NOT NULL,
	created_by  BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX idx_electricity_bills_lookup ON electricity_bills (natural_key, created_at DESC);

CREATE TABLE rc_details (
	id          UUID PRIMARY KEY,
	natural_key TEXT NOT NULL,
	vendor      TEXT NOT NULL,
	record      JSONB NOT NULL,
	created_by  BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX idx_rc_details_lookup ON rc_details (natural_key, created_at DESC);

CREATE TABLE name_matches (
	id          UUID PRIMARY KEY,
	natural_key TEXT NOT NULL,
	vendor      TEXT NOT NULL,
	record      JSONB NOT NULL,
	created_by  BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX idx_name_matches_lookup ON name_matches (natural_key, created_at DESC);

CREATE TABLE driving_licenses (
	id          UUID PRIMARY KEY,
	natural_key TEXT NOT NULL,
	vendor      TEXT NOT NULL,
	record      JSONB NOT NULL,
	created_by  BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX idx_driving_licenses_lookup ON driving_licenses (natural_key, created_at DESC);

CREATE TABLE kyc_api_logs (
	id               UUID PRIMARY KEY,
	client_id        BIGINT NOT NULL,
	service          TEXT NOT NULL,
	natural_key      TEXT NOT NULL DEFAULT '',
	vendor           TEXT NOT NULL DEFAULT '',
	endpoint         TEXT NOT NULL DEFAULT '',
	status_code      INT NOT NULL,
	status           TEXT NOT NULL,
	request_payload  JSONB,
	response_payload JSONB,
	error_message    TEXT NOT NULL DEFAULT '',
	ip_address       TEXT NOT NULL DEFAULT '',
	user_agent       TEXT NOT NULL DEFAULT '',
	record_id        UUID,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX idx_kyc_api_logs_client ON kyc_api_logs (client_id, created_at DESC);
`
