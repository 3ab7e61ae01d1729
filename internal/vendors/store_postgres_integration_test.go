//go:build integration

package vendors_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycgate/internal/catalog"
	"kycgate/internal/vendors"
	"kycgate/pkg/testutil/containers"
)

type PostgresPrioritySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *vendors.PostgresPriorityStore
	ctx      context.Context
	clientID int64
}

func TestPostgresPrioritySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresPrioritySuite))
}

func (s *PostgresPrioritySuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = vendors.NewPostgresPriorityStore(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresPrioritySuite) SetupTest() {
	for _, q := range []string{
		`DELETE FROM kyc_vendor_priority`,
		`DELETE FROM vendor_management`,
		`DELETE FROM client_management`,
	} {
		_, err := s.postgres.DB.ExecContext(s.ctx, q)
		s.Require().NoError(err)
	}
	err := s.postgres.DB.QueryRowContext(s.ctx,
		`INSERT INTO client_management (company_name, uat_key, production_key) VALUES ('Acme', 'u', 'p') RETURNING id`,
	).Scan(&s.clientID)
	s.Require().NoError(err)
}

func (s *PostgresPrioritySuite) insertVendor(name string, timeoutSeconds int, deleted bool) int64 {
	query := `
		INSERT INTO vendor_management (name, uat_base_url, uat_key, timeout_seconds, deleted_at)
		VALUES ($1, 'https://uat.test', 'key', $2, CASE WHEN $3 THEN now() ELSE NULL END)
		RETURNING id
	`
	var id int64
	s.Require().NoError(s.postgres.DB.QueryRowContext(s.ctx, query, name, timeoutSeconds, deleted).Scan(&id))
	return id
}

func (s *PostgresPrioritySuite) assign(vendorID int64, service catalog.ServiceID, priority int, deleted bool) {
	query := `
		INSERT INTO kyc_vendor_priority (client_id, service_id, vendor_id, priority, deleted_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $5 THEN now() ELSE NULL END)
	`
	_, err := s.postgres.DB.ExecContext(s.ctx, query, s.clientID, int(service), vendorID, priority, deleted)
	s.Require().NoError(err)
}

func (s *PostgresPrioritySuite) TestListForClientService() {
	s.Run("orders by priority then vendor id", func() {
		karza := s.insertVendor("karza", 15, false)
		surepass := s.insertVendor("surepass", 0, false)
		s.assign(surepass, catalog.ServicePAN, 2, false)
		s.assign(karza, catalog.ServicePAN, 1, false)

		got, err := s.store.ListForClientService(s.ctx, s.clientID, catalog.ServicePAN)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("karza", got[0].Vendor.Name)
		s.Equal("surepass", got[1].Vendor.Name)
		s.Equal(15*time.Second, got[0].Vendor.Timeout)
		s.Zero(got[1].Vendor.Timeout)
	})

	s.Run("skips soft-deleted rows on either side of the join", func() {
		live := s.insertVendor("karza", 0, false)
		dead := s.insertVendor("surepass", 0, true)
		s.assign(live, catalog.ServiceRC, 1, true)
		s.assign(dead, catalog.ServiceRC, 2, false)

		got, err := s.store.ListForClientService(s.ctx, s.clientID, catalog.ServiceRC)
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("unassigned service lists empty", func() {
		got, err := s.store.ListForClientService(s.ctx, s.clientID, catalog.ServiceBill)
		s.Require().NoError(err)
		s.Empty(got)
	})
}
