package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"kycgate/internal/verify/models"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/requestcontext"
)

// PanPostgresStore persists PAN records with one column per field; PAN is
// the highest-volume service and gets queried directly by reporting jobs.
type PanPostgresStore struct {
	db *sql.DB
}

func NewPanPostgres(db *sql.DB) *PanPostgresStore {
	return &PanPostgresStore{db: db}
}

func (s *PanPostgresStore) FindFresh(ctx context.Context, key string, window time.Duration) (models.Record, error) {
	if window <= 0 {
		return nil, sentinel.ErrNotFound
	}
	cutoff := requestcontext.Now(ctx).Add(-window)

	query := `
		SELECT id, request_id, client_ref, pan_number, full_name, first_name, middle_name,
		       last_name, gender, dob, aadhaar_linked, masked_aadhaar, phone_number, email,
		       pan_status, category, issue_date, address_line_1, address_line_2, street_name,
		       city, state, pin_code, country, full_address, vendor, raw_response,
		       created_by, created_at
		FROM pan_details
		WHERE pan_number = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		r   models.PanRecord
		raw []byte
	)
	err := s.db.QueryRowContext(ctx, query, strings.ToUpper(key), cutoff).Scan(
		&r.ID, &r.RequestID, &r.ClientRef, &r.PanNumber, &r.FullName, &r.FirstName, &r.MiddleName,
		&r.LastName, &r.Gender, &r.DOB, &r.AadhaarLinked, &r.MaskedAadhaar, &r.PhoneNumber, &r.Email,
		&r.PanStatus, &r.Category, &r.IssueDate, &r.AddressLine1, &r.AddressLine2, &r.StreetName,
		&r.City, &r.State, &r.PinCode, &r.Country, &r.FullAddress, &r.Vendor, &raw,
		&r.CreatedBy, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find pan record: %w", err)
	}
	r.Raw = raw
	return &r, nil
}

func (s *PanPostgresStore) Save(ctx context.Context, rec models.Record) error {
	r, ok := rec.(*models.PanRecord)
	if !ok {
		return fmt.Errorf("pan store: unexpected record type %T", rec)
	}

	query := `
		INSERT INTO pan_details (
			id, request_id, client_ref, pan_number, full_name, first_name, middle_name,
			last_name, gender, dob, aadhaar_linked, masked_aadhaar, phone_number, email,
			pan_status, category, issue_date, address_line_1, address_line_2, street_name,
			city, state, pin_code, country, full_address, vendor, raw_response,
			created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29
		)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.RequestID, r.ClientRef, strings.ToUpper(r.PanNumber), r.FullName, r.FirstName, r.MiddleName,
		r.LastName, r.Gender, r.DOB, r.AadhaarLinked, r.MaskedAadhaar, r.PhoneNumber, r.Email,
		r.PanStatus, r.Category, r.IssueDate, r.AddressLine1, r.AddressLine2, r.StreetName,
		r.City, r.State, r.PinCode, r.Country, r.FullAddress, r.Vendor, []byte(r.Raw),
		r.CreatedBy, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save pan record: %w", err)
	}
	return nil
}

// DocPostgresStore persists a record as its natural key plus the full
// canonical document in jsonb. The remaining services share this shape;
// their rows are read back through the service's decode function.
type DocPostgresStore struct {
	db     *sql.DB
	table  string
	decode func([]byte) (models.Record, error)
}

func newDocPostgres(db *sql.DB, table string, decode func([]byte) (models.Record, error)) *DocPostgresStore {
	return &DocPostgresStore{db: db, table: table, decode: decode}
}

func NewVoterPostgres(db *sql.DB) *DocPostgresStore {
	return newDocPostgres(db, "voter_details", DecodeVoter)
}

func NewBillPostgres(db *sql.DB) *DocPostgresStore {
	return newDocPostgres(db, "electricity_bills", DecodeBill)
}

func NewRcPostgres(db *sql.DB) *DocPostgresStore {
	return newDocPostgres(db, "rc_details", DecodeRc)
}

func NewNameMatchPostgres(db *sql.DB) *DocPostgresStore {
	return newDocPostgres(db, "name_matches", DecodeNameMatch)
}

func NewDrivingLicensePostgres(db *sql.DB) *DocPostgresStore {
	return newDocPostgres(db, "driving_licenses", DecodeDrivingLicense)
}

func (s *DocPostgresStore) FindFresh(ctx context.Context, key string, window time.Duration) (models.Record, error) {
	if window <= 0 {
		return nil, sentinel.ErrNotFound
	}
	cutoff := requestcontext.Now(ctx).Add(-window)

	query := fmt.Sprintf(`
		SELECT record
		FROM %s
		WHERE natural_key = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`, s.table)

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, strings.ToUpper(key), cutoff).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find %s record: %w", s.table, err)
	}
	return s.decode(doc)
}

func (s *DocPostgresStore) Save(ctx context.Context, rec models.Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", s.table, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, natural_key, vendor, record, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.table)

	var meta struct {
		Vendor    string `json:"vendor"`
		CreatedBy int64  `json:"created_by"`
	}
	if err := json.Unmarshal(doc, &meta); err != nil {
		return fmt.Errorf("reread %s record meta: %w", s.table, err)
	}
	_, err = s.db.ExecContext(ctx, query,
		rec.RecordID(), strings.ToUpper(rec.NaturalKey()), meta.Vendor, doc, meta.CreatedBy, rec.CreatedTime(),
	)
	if err != nil {
		return fmt.Errorf("save %s record: %w", s.table, err)
	}
	return nil
}
