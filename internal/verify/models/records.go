// Package models defines the canonical verification records: the gateway's
// own normalized representation of a result, independent of which vendor
// produced it. Records are immutable once created; cache lookups return
// existing rows, later requests outside the window append new ones.
package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the behavior the engine needs from any canonical record: an
// identity, the natural key it is cached under, and its creation time for
// freshness checks.
type Record interface {
	RecordID() uuid.UUID
	NaturalKey() string
	CreatedTime() time.Time

	// Stamp assigns the record its identity and ownership just before
	// persistence. Adapters produce unstamped records.
	Stamp(createdBy int64, at time.Time)
}

// PanRecord is the canonical PAN verification result.
type PanRecord struct {
	ID        uuid.UUID `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	ClientRef string    `json:"client_ref,omitempty"` // vendor-side correlation id

	PanNumber  string `json:"pan_number"`
	FullName   string `json:"full_name,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Gender     string `json:"gender,omitempty"`
	DOB        string `json:"dob,omitempty"`

	AadhaarLinked *bool  `json:"aadhaar_linked,omitempty"`
	MaskedAadhaar string `json:"masked_aadhaar,omitempty"`

	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`

	PanStatus string `json:"pan_status,omitempty"`
	Category  string `json:"category,omitempty"`
	IssueDate string `json:"issue_date,omitempty"`

	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	StreetName   string `json:"street_name,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PinCode      string `json:"pin_code,omitempty"`
	Country      string `json:"country,omitempty"`
	FullAddress  string `json:"full_address,omitempty"`

	Vendor    string          `json:"vendor"`
	Raw       json.RawMessage `json:"raw_response,omitempty"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *PanRecord) RecordID() uuid.UUID { return r.ID }
func (r *PanRecord) NaturalKey() string { return strings.ToUpper(r.PanNumber) }
func (r *PanRecord) CreatedTime() time.Time { return r.CreatedAt }

func (r *PanRecord) Stamp(createdBy int64, at time.Time) {
	r.ID = uuid.New()
	r.CreatedBy = createdBy
	r.CreatedAt = at
}

// VoterRecord is the canonical voter-ID (EPIC) verification result.
type VoterRecord struct {
	ID        uuid.UUID `json:"id"`
	ClientRef string    `json:"client_ref,omitempty"`

	VoterID      string `json:"voter_id"`
	Name         string `json:"name,omitempty"`
	RelationName string `json:"relation_name,omitempty"`
	RelationType string `json:"relation_type,omitempty"`
	Gender       string `json:"gender,omitempty"`

	District                   string `json:"district,omitempty"`
	State                      string `json:"state,omitempty"`
	AssemblyConstituency       string `json:"assembly_constituency,omitempty"`
	AssemblyConstituencyNumber string `json:"assembly_constituency_number,omitempty"`
	PollingStation             string `json:"polling_station,omitempty"`
	PartNumber                 string `json:"part_no,omitempty"`
	PartName                   string `json:"part_name,omitempty"`
	SlNoInPart                 string `json:"slno_in_part,omitempty"`
	HouseNumber                string `json:"house_no,omitempty"`
	LastUpdate                 string `json:"last_update,omitempty"`
	StateCode                  string `json:"st_code,omitempty"`

	Vendor    string          `json:"vendor"`
	Raw       json.RawMessage `json:"raw_response,omitempty"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *VoterRecord) RecordID() uuid.UUID { return r.ID }
func (r *VoterRecord) NaturalKey() string { return strings.ToUpper(r.VoterID) }
func (r *VoterRecord) CreatedTime() time.Time { return r.CreatedAt }

func (r *VoterRecord) Stamp(createdBy int64, at time.Time) {
	r.ID = uuid.New()
	r.CreatedBy = createdBy
	r.CreatedAt = at
}

// BillRecord is the canonical electricity bill verification result. The
// natural key is the vendor-assigned customer id.
type BillRecord struct {
	ID        uuid.UUID `json:"id"`
	ClientRef string    `json:"client_ref,omitempty"`

	ConsumerID      string `json:"consumer_id"`
	CustomerID      string `json:"customer_id,omitempty"`
	ServiceProvider string `json:"service_provider,omitempty"`
	OperatorCode    string `json:"operator_code,omitempty"`
	State           string `json:"state,omitempty"`
	District        string `json:"district,omitempty"`

	FullName string `json:"full_name,omitempty"`
	Address  string `json:"address,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Email    string `json:"email,omitempty"`

	BillNumber    string   `json:"bill_number,omitempty"`
	BillAmount    *float64 `json:"bill_amount,omitempty"`
	BillDueDate   string   `json:"bill_due_date,omitempty"`
	BillIssueDate string   `json:"bill_issue_date,omitempty"`
	BillStatus    string   `json:"bill_status,omitempty"`
	DocumentLink  string   `json:"document_link,omitempty"`

	Vendor    string          `json:"vendor"`
	Raw       json.RawMessage `json:"raw_response,omitempty"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *BillRecord) RecordID() uuid.UUID { return r.ID }
func (r *BillRecord) NaturalKey() string { return strings.ToUpper(r.ConsumerID) }
func (r *BillRecord) CreatedTime() time.Time { return r.CreatedAt }

func (r *BillRecord) Stamp(createdBy int64, at time.Time) {
	r.ID = uuid.New()
	r.CreatedBy = createdBy
	r.CreatedAt = at
}

// RcRecord is the canonical vehicle registration (RC) verification result.
type RcRecord struct {
	ID        uuid.UUID `json:"id"`
	ClientRef string    `json:"client_ref,omitempty"`

	RcNumber         string `json:"rc_number"`
	OwnerName        string `json:"owner_name,omitempty"`
	FatherName       string `json:"father_name,omitempty"`
	PresentAddress   string `json:"present_address,omitempty"`
	PermanentAddress string `json:"permanent_address,omitempty"`
	MobileNumber     string `json:"mobile_number,omitempty"`

	MakerModel       string `json:"maker_model,omitempty"`
	MakerDescription string `json:"maker_description,omitempty"`
	BodyType         string `json:"body_type,omitempty"`
	FuelType         string `json:"fuel_type,omitempty"`
	Color            string `json:"color,omitempty"`

	InsuranceCompany      string `json:"insurance_company,omitempty"`
	InsurancePolicyNumber string `json:"insurance_policy_number,omitempty"`
	InsuranceUpto         string `json:"insurance_upto,omitempty"`
	FitUpto               string `json:"fit_upto,omitempty"`
	RegistrationDate      string `json:"registration_date,omitempty"`
	RegisteredAt          string `json:"registered_at,omitempty"`
	TaxUpto               string `json:"tax_upto,omitempty"`
	Financer              string `json:"financer,omitempty"`
	RcStatus              string `json:"rc_status,omitempty"`

	Vendor    string          `json:"vendor"`
	Raw       json.RawMessage `json:"raw_response,omitempty"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *RcRecord) RecordID() uuid.UUID { return r.ID }
func (r *RcRecord) NaturalKey() string { return strings.ToUpper(r.RcNumber) }
func (r *RcRecord) CreatedTime() time.Time { return r.CreatedAt }

func (r *RcRecord) Stamp(createdBy int64, at time.Time) {
	r.ID = uuid.New()
	r.CreatedBy = createdBy
	r.CreatedAt = at
}

// NameMatchRecord is the canonical name-match result. The natural key is the
// ordered pair of input names.
type NameMatchRecord struct {
	ID        uuid.UUID `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	ClientRef string    `json:"client_ref,omitempty"`

	Name1       string   `json:"name_1"`
	Name2       string   `json:"name_2"`
	MatchScore  *float64 `json:"match_score,omitempty"`
	MatchStatus string   `json:"match_status,omitempty"`

	Vendor    string          `json:"vendor"`
	Raw       json.RawMessage `json:"raw_response,omitempty"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *NameMatchRecord) RecordID() uuid.UUID { return r.ID }
func (r *NameMatchRecord) CreatedTime() time.Time { return r.CreatedAt }

func (r *NameMatchRecord) Stamp(createdBy int64, at time.Time) {
	r.ID = uuid.New()
	r.CreatedBy = createdBy
	r.CreatedAt = at
}

func (r *NameMatchRecord) NaturalKey() string {
	return NameMatchKey(r.Name1, r.Name2)
}

// NameMatchKey builds the composite cache key for a name pair.
func NameMatchKey(name1, name2 string) string {
	return strings.ToUpper(strings.TrimSpace(name1)) + "|" + strings.ToUpper(strings.TrimSpace(name2))
}

// DrivingLicenseRecord is the canonical driving license verification result.
type DrivingLicenseRecord struct {
	ID        uuid.UUID `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	ClientRef string    `json:"client_ref,omitempty"`

	DlNumber   string `json:"dl_number"`
	Name       string `json:"name,omitempty"`
	FatherName string `json:"father_name,omitempty"`
	DOB        string `json:"dob,omitempty"`

	IssueDate            string `json:"issue_date,omitempty"`
	ValidTill            string `json:"valid_till,omitempty"`
	NonTransportValidity string `json:"non_transport_validity,omitempty"`
	TransportValidity    string `json:"transport_validity,omitempty"`

	Address          string `json:"address,omitempty"`
	State            string `json:"state,omitempty"`
	BloodGroup       string `json:"blood_group,omitempty"`
	DlStatus         string `json:"dl_status,omitempty"`
	IssuingAuthority string `json:"issuing_authority,omitempty"`
	RtoCode          string `json:"rto_code,omitempty"`
	Photo            string `json:"photo,omitempty"`
	IsVerified       bool   `json:"is_verified"`

	Vendor    string          `json:"vendor"`
	Raw       json.RawMessage `json:"raw_response,omitempty"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *DrivingLicenseRecord) RecordID() uuid.UUID { return r.ID }
func (r *DrivingLicenseRecord) NaturalKey() string { return strings.ToUpper(r.DlNumber) }
func (r *DrivingLicenseRecord) CreatedTime() time.Time { return r.CreatedAt }

func (r *DrivingLicenseRecord) Stamp(createdBy int64, at time.Time) {
	r.ID = uuid.New()
	r.CreatedBy = createdBy
	r.CreatedAt = at
}
