//go:build integration

package auditlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kycgate/internal/verify/auditlog"
	"kycgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *auditlog.PostgresStore
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
	s.store = auditlog.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(s.ctx, "kyc_api_logs"))
}

func (s *PostgresStoreSuite) TestAppend() {
	s.Run("persists a full success row", func() {
		recordID := uuid.New()
		row := auditlog.Row{
			ID:              uuid.New(),
			ClientID:        1,
			Service:         "PAN",
			NaturalKey:      "ABCDE1234F",
			Vendor:          "karza",
			Endpoint:        "/api/v1/pan",
			StatusCode:      200,
			Status:          auditlog.StatusSuccess,
			RequestPayload:  []byte(`{"pan":"ABCDE1234F"}`),
			ResponsePayload: []byte(`{"status":200}`),
			IPAddress:       "10.0.0.1",
			UserAgent:       "curl/8.0",
			RecordID:        &recordID,
			CreatedAt:       time.Now().UTC(),
		}
		s.Require().NoError(s.store.Append(s.ctx, row))

		var (
			vendor string
			gotRec uuid.UUID
			status string
		)
		err := s.postgres.DB.QueryRowContext(s.ctx,
			`SELECT vendor, record_id, status FROM kyc_api_logs WHERE id = $1`, row.ID,
		).Scan(&vendor, &gotRec, &status)
		s.Require().NoError(err)
		s.Equal("karza", vendor)
		s.Equal(recordID, gotRec)
		s.Equal(auditlog.StatusSuccess, status)
	})

	s.Run("failure rows keep null payload and record id", func() {
		row := auditlog.Row{
			ID:           uuid.New(),
			ClientID:     1,
			Service:      "PAN",
			StatusCode:   401,
			Status:       auditlog.StatusFail,
			ErrorMessage: "Invalid API key",
			CreatedAt:    time.Now().UTC(),
		}
		s.Require().NoError(s.store.Append(s.ctx, row))

		var (
			recordID *uuid.UUID
			payload  []byte
			errMsg   string
		)
		err := s.postgres.DB.QueryRowContext(s.ctx,
			`SELECT record_id, response_payload, error_message FROM kyc_api_logs WHERE id = $1`, row.ID,
		).Scan(&recordID, &payload, &errMsg)
		s.Require().NoError(err)
		s.Nil(recordID)
		s.Nil(payload)
		s.Equal("Invalid API key", errMsg)
	})
}
