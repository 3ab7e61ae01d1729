package adapters

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kycgate/internal/verify/models"
)

// dobForVendor reformats the canonical DD-MM-YYYY date of birth for vendors
// that expect ISO dates. Unparsable input passes through unchanged so the
// vendor reports the problem instead of us guessing.
func dobForVendor(vendor, dob string) string {
	if dob == "" {
		return ""
	}
	t, err := time.Parse("02-01-2006", dob)
	if err != nil {
		return dob
	}
	if vendor == VendorSurepass {
		return t.Format("2006-01-02")
	}
	return dob
}

type karzaDriving struct{ caller }

func newKarzaDriving(client *http.Client, timeout time.Duration) *karzaDriving {
	return &karzaDriving{caller{
		vendor:         VendorKarza,
		endpoint:       "v3/dl",
		auth:           karzaAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *karzaDriving) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"dlNo":              in.Get("license_no"),
		"dob":               dobForVendor(VendorKarza, in.Get("dob")),
		"additionalDetails": true,
		"consent":           "Y",
	})
}

func (a *karzaDriving) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("result")
	if len(result) == 0 {
		return nil, false
	}
	validity := result.child("validity")

	dlNumber := result.str("dlNumber")
	if dlNumber == "" {
		dlNumber = in.Get("license_no")
	}
	dob := normalizeDate(result.str("dob"))
	if dob == "" {
		dob = normalizeDate(in.Get("dob"))
	}

	address, state := permanentAddress(result.list("address"))
	nonTransport := normalizeDate(validity.str("nonTransport"))
	transport := normalizeDate(validity.str("transport"))
	validTill := nonTransport
	if validTill == "" {
		validTill = transport
	}
	status := result.str("status")

	return &models.DrivingLicenseRecord{
		RequestID: doc.str("requestId"),
		ClientRef: doc.str("requestId"),

		DlNumber:   dlNumber,
		Name:       result.str("name"),
		FatherName: result.str("father/husband"),
		DOB:        dob,

		IssueDate:            normalizeDate(result.str("issueDate")),
		ValidTill:            validTill,
		NonTransportValidity: nonTransport,
		TransportValidity:    transport,

		Address:          address,
		State:            state,
		BloodGroup:       result.str("bloodGroup"),
		DlStatus:         status,
		IssuingAuthority: result.child("endorsementAndHazardousDetails").str("initialIssuingOffice"),
		Photo:            result.str("img"),
		IsVerified:       status == "ACTIVE",

		Vendor: VendorKarza,
		Raw:    raw,
	}, true
}

// permanentAddress picks the permanent entry from karza's address list,
// falling back to the first entry. Also returns that entry's state.
func permanentAddress(addresses []any) (address, state string) {
	var first object
	for _, entry := range addresses {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		o := object(m)
		if first == nil {
			first = o
		}
		if strings.EqualFold(o.str("type"), "permanent") {
			return o.str("completeAddress"), o.str("state")
		}
	}
	if first == nil {
		return "", ""
	}
	return first.str("completeAddress"), first.str("state")
}

type surepassDriving struct{ caller }

func newSurepassDriving(client *http.Client, timeout time.Duration) *surepassDriving {
	return &surepassDriving{caller{
		vendor:         VendorSurepass,
		endpoint:       "api/v1/driving-license/driving-license",
		auth:           surepassAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *surepassDriving) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"id_number": in.Get("license_no"),
		"dob":       dobForVendor(VendorSurepass, in.Get("dob")),
	})
}

func (a *surepassDriving) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("data")
	if len(result) == 0 {
		return nil, false
	}
	dlNumber := result.str("license_number")
	if dlNumber == "" {
		dlNumber = in.Get("license_no")
	}
	status := result.str("dl_status")
	if status == "" {
		status = "Active"
	}
	verified, _ := result["status"].(bool)

	return &models.DrivingLicenseRecord{
		RequestID: doc.str("request_id"),
		ClientRef: result.str("client_id"),

		DlNumber:   dlNumber,
		Name:       result.str("name"),
		FatherName: result.str("father_or_husband_name"),
		DOB:        normalizeDate(result.str("dob")),

		IssueDate:            normalizeDate(result.str("doi")),
		ValidTill:            normalizeDate(result.str("doe")),
		NonTransportValidity: normalizeDate(result.str("doe")),
		TransportValidity:    normalizeDate(result.str("transport_doe")),

		Address:          result.str("permanent_address"),
		State:            result.str("state"),
		BloodGroup:       result.str("blood_group"),
		DlStatus:         status,
		IssuingAuthority: result.str("ola_name"),
		RtoCode:          result.str("ola_code"),
		Photo:            result.str("profile_image"),
		IsVerified:       verified,

		Vendor: VendorSurepass,
		Raw:    raw,
	}, true
}
