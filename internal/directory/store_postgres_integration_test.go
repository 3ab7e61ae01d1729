//go:build integration

package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"kycgate/internal/directory"
	"kycgate/internal/platform/config"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *directory.PostgresStore
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = directory.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.postgres.DB.ExecContext(s.ctx, `DELETE FROM client_management`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) insertClient(name, uatKey, prodKey string, deleted bool) int64 {
	query := `
		INSERT INTO client_management (company_name, uat_key, production_key, deleted_at)
		VALUES ($1, $2, $3, CASE WHEN $4 THEN now() ELSE NULL END)
		RETURNING id
	`
	var id int64
	s.Require().NoError(s.postgres.DB.QueryRowContext(s.ctx, query, name, uatKey, prodKey, deleted).Scan(&id))
	return id
}

func (s *PostgresStoreSuite) TestFindByAPIKey() {
	s.Run("resolves by environment key column", func() {
		id := s.insertClient("Acme", "uat-abc", "prod-abc", false)

		got, err := s.store.FindByAPIKey(s.ctx, "uat-abc", config.EnvUAT)
		s.Require().NoError(err)
		s.Equal(id, got.ID)
		s.Equal("Acme", got.CompanyName)

		got, err = s.store.FindByAPIKey(s.ctx, "prod-abc", config.EnvProduction)
		s.Require().NoError(err)
		s.Equal(id, got.ID)
	})

	s.Run("keys do not cross environments", func() {
		s.insertClient("Acme", "uat-abc", "prod-abc", false)

		_, err := s.store.FindByAPIKey(s.ctx, "prod-abc", config.EnvUAT)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("soft-deleted clients are invisible", func() {
		s.insertClient("Gone", "uat-gone", "prod-gone", true)

		_, err := s.store.FindByAPIKey(s.ctx, "uat-gone", config.EnvUAT)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty key misses without a query", func() {
		_, err := s.store.FindByAPIKey(s.ctx, "", config.EnvUAT)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
