package adapters

import (
	"encoding/json"
	"net/http"
	"time"

	"kycgate/internal/verify/models"
)

type karzaBill struct{ caller }

func newKarzaBill(client *http.Client, timeout time.Duration) *karzaBill {
	return &karzaBill{caller{
		vendor:         VendorKarza,
		endpoint:       "v3/electricity",
		auth:           karzaAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *karzaBill) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"consumer_id":      in.Get("consumer_id"),
		"service_provider": in.Get("service_provider"),
		"district":         in.Get("district"),
		"regMobileNo":      in.Get("reg_mobile_no"),
		"consent":          map[string]any{"consent": "Y"},
	})
}

func (a *karzaBill) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("result")
	if len(result) == 0 {
		return nil, false
	}
	consumerID := result.str("consumer_number", "consumer_id")
	if consumerID == "" {
		consumerID = in.Get("consumer_id")
	}
	return &models.BillRecord{
		ClientRef: doc.str("request_id"),

		ConsumerID:      consumerID,
		CustomerID:      result.str("consumer_number", "consumer_id"),
		ServiceProvider: result.str("service_provider"),
		OperatorCode:    result.str("operator_code"),
		District:        result.str("district"),

		FullName: result.str("consumer_name"),
		Address:  result.str("address"),
		Mobile:   result.str("mobile_number"),
		Email:    result.str("email_address"),

		BillNumber:    result.str("bill_no"),
		BillAmount:    result.decimal("bill_amount", "amount_payable"),
		BillDueDate:   result.str("bill_due_date", "dueDate"),
		BillIssueDate: result.str("bill_issue_date", "bill_date"),
		BillStatus:    result.str("status"),

		Vendor: VendorKarza,
		Raw:    raw,
	}, true
}

type surepassBill struct{ caller }

func newSurepassBill(client *http.Client, timeout time.Duration) *surepassBill {
	return &surepassBill{caller{
		vendor:         VendorSurepass,
		endpoint:       "api/v1/utility/electricity",
		auth:           surepassAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *surepassBill) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"id_number":     in.Get("consumer_id"),
		"operator_code": in.Get("service_provider"),
	})
}

func (a *surepassBill) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("data")
	if len(result) == 0 {
		return nil, false
	}
	consumerID := result.str("customer_id", "id_number")
	if consumerID == "" {
		consumerID = in.Get("consumer_id")
	}
	return &models.BillRecord{
		ClientRef: result.str("client_id"),

		ConsumerID:   consumerID,
		CustomerID:   result.str("customer_id", "id_number"),
		OperatorCode: result.str("operator_code"),
		State:        result.str("state"),

		FullName: result.str("full_name"),
		Address:  result.str("address"),
		Mobile:   result.str("mobile"),
		Email:    result.str("user_email"),

		BillNumber:    result.str("bill_number"),
		BillAmount:    result.decimal("bill_amount"),
		BillDueDate:   result.str("bill_due_date"),
		BillIssueDate: result.str("bill_issue_date"),
		BillStatus:    result.str("bill_status"),
		DocumentLink:  result.str("document_link"),

		Vendor: VendorSurepass,
		Raw:    raw,
	}, true
}
