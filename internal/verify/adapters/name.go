package adapters

import (
	"encoding/json"
	"net/http"
	"time"

	"kycgate/internal/verify/models"
)

type karzaName struct{ caller }

func newKarzaName(client *http.Client, timeout time.Duration) *karzaName {
	return &karzaName{caller{
		vendor:         VendorKarza,
		endpoint:       "v3/name",
		auth:           karzaAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *karzaName) BuildRequest(in models.Input) (json.RawMessage, error) {
	nameType := in.Get("type")
	if nameType == "" {
		nameType = "individual"
	}
	return json.Marshal(map[string]any{
		"name1":                  in.Get("name_1"),
		"name2":                  in.Get("name_2"),
		"type":                   nameType,
		"preset":                 "s",
		"allowPartialMatch":      true,
		"suppressReorderPenalty": true,
	})
}

func (a *karzaName) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("result")
	if len(result) == 0 {
		return nil, false
	}
	return &models.NameMatchRecord{
		RequestID: doc.str("requestId"),
		ClientRef: doc.str("requestId"),

		Name1:       in.Get("name_1"),
		Name2:       in.Get("name_2"),
		MatchScore:  result.decimal("score"),
		MatchStatus: result.str("result"),

		Vendor: VendorKarza,
		Raw:    raw,
	}, true
}

type surepassName struct{ caller }

func newSurepassName(client *http.Client, timeout time.Duration) *surepassName {
	return &surepassName{caller{
		vendor:         VendorSurepass,
		endpoint:       "api/v1/utils/name-match",
		auth:           surepassAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *surepassName) BuildRequest(in models.Input) (json.RawMessage, error) {
	nameType := in.Get("name_type")
	if nameType == "" {
		nameType = "person"
	}
	return json.Marshal(map[string]any{
		"name_1":    in.Get("name_1"),
		"name_2":    in.Get("name_2"),
		"name_type": nameType,
	})
}

func (a *surepassName) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("data")
	if len(result) == 0 {
		return nil, false
	}
	name1 := result.str("name_1")
	if name1 == "" {
		name1 = in.Get("name_1")
	}
	name2 := result.str("name_2")
	if name2 == "" {
		name2 = in.Get("name_2")
	}
	return &models.NameMatchRecord{
		ClientRef: result.str("client_id"),

		Name1:       name1,
		Name2:       name2,
		MatchScore:  result.decimal("match_score"),
		MatchStatus: result.str("match_status"),

		Vendor: VendorSurepass,
		Raw:    raw,
	}, true
}
