//go:build integration

package records_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kycgate/internal/verify/models"
	"kycgate/internal/verify/records"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
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
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(s.ctx, "pan_details", "voter_details"))
}

func (s *PostgresStoreSuite) newPan(pan string, at time.Time) *models.PanRecord {
	rec := &models.PanRecord{PanNumber: pan, FullName: "Ram Kumar", Vendor: "karza", Raw: []byte(`{"statusCode":101}`)}
	rec.Stamp(1, at)
	return rec
}

func (s *PostgresStoreSuite) TestPanStore() {
	store := records.NewPanPostgres(s.postgres.DB)
	window := 7 * 24 * time.Hour

	s.Run("save then find inside window", func() {
		s.Require().NoError(store.Save(s.ctx, s.newPan("abcde1234f", time.Now().UTC())))

		got, err := store.FindFresh(s.ctx, "ABCDE1234F", window)
		s.Require().NoError(err)
		pan := got.(*models.PanRecord)
		s.Equal("ABCDE1234F", pan.NaturalKey())
		s.Equal("Ram Kumar", pan.FullName)
		s.Equal("karza", pan.Vendor)
		s.JSONEq(`{"statusCode":101}`, string(pan.Raw))
	})

	s.Run("stale row misses", func() {
		s.Require().NoError(store.Save(s.ctx, s.newPan("FGHIJ5678K", time.Now().UTC().Add(-8*24*time.Hour))))

		_, err := store.FindFresh(s.ctx, "FGHIJ5678K", window)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("newest row wins", func() {
		old := s.newPan("KLMNO9012P", time.Now().UTC().Add(-time.Hour))
		old.FullName = "Old Name"
		s.Require().NoError(store.Save(s.ctx, old))
		s.Require().NoError(store.Save(s.ctx, s.newPan("KLMNO9012P", time.Now().UTC())))

		got, err := store.FindFresh(s.ctx, "KLMNO9012P", window)
		s.Require().NoError(err)
		s.Equal("Ram Kumar", got.(*models.PanRecord).FullName)
	})

	s.Run("zero window always misses", func() {
		s.Require().NoError(store.Save(s.ctx, s.newPan("QRSTU3456V", time.Now().UTC())))

		_, err := store.FindFresh(s.ctx, "QRSTU3456V", 0)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestDocStore() {
	store := records.NewVoterPostgres(s.postgres.DB)
	window := 7 * 24 * time.Hour

	s.Run("round-trips the full document", func() {
		rec := &models.VoterRecord{VoterID: "XYZ1234567", Name: "Ram Kumar", State: "Maharashtra", Vendor: "surepass"}
		rec.Stamp(3, time.Now().UTC())
		s.Require().NoError(store.Save(s.ctx, rec))

		got, err := store.FindFresh(s.ctx, "xyz1234567", window)
		s.Require().NoError(err)
		voter := got.(*models.VoterRecord)
		s.Equal(rec.RecordID(), voter.RecordID())
		s.Equal("Maharashtra", voter.State)
		s.Equal(int64(3), voter.CreatedBy)
	})

	s.Run("meta columns come from the document", func() {
		rec := &models.VoterRecord{VoterID: "ABC7654321", Vendor: "karza"}
		rec.Stamp(9, time.Now().UTC())
		s.Require().NoError(store.Save(s.ctx, rec))

		var (
			id        uuid.UUID
			vendor    string
			createdBy int64
		)
		err := s.postgres.DB.QueryRowContext(s.ctx,
			`SELECT id, vendor, created_by FROM voter_details WHERE natural_key = $1`, "ABC7654321",
		).Scan(&id, &vendor, &createdBy)
		s.Require().NoError(err)
		s.Equal(rec.RecordID(), id)
		s.Equal("karza", vendor)
		s.Equal(int64(9), createdBy)
	})

	s.Run("unknown key misses", func() {
		_, err := store.FindFresh(s.ctx, "NOPE000000", window)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
