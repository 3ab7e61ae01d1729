package adapters

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kycgate/internal/verify/models"
)

const defaultCountry = "India"

type karzaPan struct{ caller }

func newKarzaPan(client *http.Client, timeout time.Duration) *karzaPan {
	return &karzaPan{caller{
		vendor:         VendorKarza,
		endpoint:       "v3/pan-profile",
		auth:           karzaAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *karzaPan) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"pan":               in.Get("pan"),
		"aadhaarLastFour":   "",
		"dob":               "",
		"name":              "",
		"address":           "",
		"getContactDetails": "Y",
		"PANStatus":         "Y",
		"isSalaried":        "Y",
		"isDirector":        "Y",
		"isSoleProp":        "Y",
		"consent":           "Y",
	})
}

func (a *karzaPan) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("result")
	if len(result) == 0 {
		return nil, false
	}
	address := result.child("address")

	rec := &models.PanRecord{
		RequestID: doc.str("requestId"),
		ClientRef: doc.str("client_id"),

		PanNumber:  in.Get("pan"),
		FullName:   result.str("name"),
		FirstName:  result.str("firstName"),
		MiddleName: result.str("middleName"),
		LastName:   result.str("lastName"),
		Gender:     result.str("gender"),
		DOB:        result.str("dob"),

		AadhaarLinked: result.boolPtr("aadhaarLinked"),
		MaskedAadhaar: result.str("maskedAadhaar"),

		PhoneNumber: result.str("mobileNo"),
		Email:       result.str("emailId"),

		PanStatus: result.str("status"),
		Category:  result.str("category"),
		IssueDate: result.str("issueDate"),

		AddressLine1: address.str("buildingName"),
		AddressLine2: address.str("locality"),
		StreetName:   address.str("streetName"),
		City:         address.str("city"),
		State:        address.str("state"),
		PinCode:      address.str("pinCode"),
		Country:      defaultCountry,
		FullAddress:  address.str("full"),

		Vendor: VendorKarza,
		Raw:    raw,
	}
	if c := address.str("country"); c != "" {
		rec.Country = c
	}
	return rec, true
}

type surepassPan struct{ caller }

func newSurepassPan(client *http.Client, timeout time.Duration) *surepassPan {
	return &surepassPan{caller{
		vendor:         VendorSurepass,
		endpoint:       "api/v1/pan/pan-comprehensive",
		auth:           surepassAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *surepassPan) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{"id_number": in.Get("pan")})
}

func (a *surepassPan) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("data")
	if len(result) == 0 {
		return nil, false
	}
	address := result.child("address")

	first, middle, last := splitFullName(result.list("full_name_split"))

	rec := &models.PanRecord{
		ClientRef: result.str("client_id"),

		PanNumber:  in.Get("pan"),
		FullName:   result.str("full_name"),
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		Gender:     normalizeGender(result.str("gender")),
		DOB:        result.str("dob", "input_dob"),

		AadhaarLinked: result.boolPtr("aadhaar_linked"),
		MaskedAadhaar: result.str("masked_aadhaar"),

		PhoneNumber: result.str("phone_number"),
		Email:       result.str("email"),

		PanStatus: result.str("status"),
		Category:  result.str("category"),

		AddressLine1: address.str("line_1"),
		AddressLine2: address.str("line_2"),
		StreetName:   address.str("street_name"),
		City:         address.str("city"),
		State:        address.str("state"),
		PinCode:      address.str("zip"),
		Country:      defaultCountry,
		FullAddress:  address.str("full"),

		Vendor: VendorSurepass,
		Raw:    raw,
	}
	if c := address.str("country"); c != "" {
		rec.Country = c
	}
	return rec, true
}

// splitFullName maps surepass's full_name_split array onto first, middle and
// last components. Two-part names have no middle component; longer names fold
// the interior parts into one.
func splitFullName(parts []any) (first, middle, last string) {
	var names []string
	for _, p := range parts {
		if s := stringify(p); s != "" {
			names = append(names, s)
		}
	}
	switch len(names) {
	case 0:
	case 1:
		first = names[0]
	case 2:
		first, last = names[0], names[1]
	default:
		first = names[0]
		middle = strings.Join(names[1:len(names)-1], " ")
		last = names[len(names)-1]
	}
	return first, middle, last
}

// normalizeGender collapses surepass's single-letter codes to words.
func normalizeGender(g string) string {
	if g == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(g), "m") {
		return "male"
	}
	return "female"
}
