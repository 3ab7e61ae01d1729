package adapters

import (
	"encoding/json"
	"net/http"
	"time"

	"kycgate/internal/verify/models"
)

type karzaRc struct{ caller }

func newKarzaRc(client *http.Client, timeout time.Duration) *karzaRc {
	return &karzaRc{caller{
		vendor:         VendorKarza,
		endpoint:       "v3/rc-advanced",
		auth:           karzaAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *karzaRc) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"reg_no":  in.Get("rc_number"),
		"consent": "Y",
	})
}

func (a *karzaRc) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("result")
	if len(result) == 0 {
		return nil, false
	}
	rcNumber := result.str("rc_regn_no")
	if rcNumber == "" {
		rcNumber = in.Get("rc_number")
	}
	return &models.RcRecord{
		ClientRef: doc.child("clientData").str("caseId"),

		RcNumber:       rcNumber,
		OwnerName:      result.str("rc_owner_name"),
		FatherName:     result.str("rc_f_name"),
		PresentAddress: result.str("rc_present_address"),
		MobileNumber:   result.str("rc_mobile_no"),

		MakerModel:       result.str("rc_maker_model"),
		MakerDescription: result.str("rc_maker_desc"),
		BodyType:         result.str("rc_body_type_desc"),
		FuelType:         result.str("rc_fuel_desc"),
		Color:            result.str("rc_color"),

		InsuranceCompany:      result.str("rc_insurance_comp"),
		InsurancePolicyNumber: result.str("rc_insurance_policy_no"),
		InsuranceUpto:         result.str("rc_insurance_upto"),
		FitUpto:               result.str("rc_fit_upto"),
		RegistrationDate:      result.str("rc_regn_dt"),
		RegisteredAt:          result.str("rc_registered_at"),
		TaxUpto:               result.str("rc_tax_upto"),
		Financer:              result.str("rc_financer"),
		RcStatus:              result.str("rc_status_as_on"),

		Vendor: VendorKarza,
		Raw:    raw,
	}, true
}

type surepassRc struct{ caller }

func newSurepassRc(client *http.Client, timeout time.Duration) *surepassRc {
	return &surepassRc{caller{
		vendor:         VendorSurepass,
		endpoint:       "api/v1/rc/rc-full",
		auth:           surepassAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *surepassRc) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{"id_number": in.Get("rc_number")})
}

func (a *surepassRc) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("data")
	if len(result) == 0 {
		return nil, false
	}
	rcNumber := result.str("rc_number")
	if rcNumber == "" {
		rcNumber = in.Get("rc_number")
	}
	return &models.RcRecord{
		ClientRef: result.str("client_id"),

		RcNumber:         rcNumber,
		OwnerName:        result.str("owner_name"),
		FatherName:       result.str("father_name"),
		PresentAddress:   result.str("present_address"),
		PermanentAddress: result.str("permanent_address"),
		MobileNumber:     result.str("mobile_number"),

		MakerModel:       result.str("maker_model"),
		MakerDescription: result.str("maker_description"),
		BodyType:         result.str("body_type"),
		FuelType:         result.str("fuel_type"),
		Color:            result.str("color"),

		InsuranceCompany:      result.str("insurance_company"),
		InsurancePolicyNumber: result.str("insurance_policy_number"),
		InsuranceUpto:         result.str("insurance_upto"),
		FitUpto:               result.str("fit_up_to"),
		RegistrationDate:      result.str("registration_date"),
		RegisteredAt:          result.str("registered_at"),
		TaxUpto:               result.str("tax_upto"),
		Financer:              result.str("financer"),
		RcStatus:              result.str("rc_status"),

		Vendor: VendorSurepass,
		Raw:    raw,
	}, true
}
