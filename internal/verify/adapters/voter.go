package adapters

import (
	"encoding/json"
	"net/http"
	"time"

	"kycgate/internal/verify/models"
)

type karzaVoter struct{ caller }

func newKarzaVoter(client *http.Client, timeout time.Duration) *karzaVoter {
	return &karzaVoter{caller{
		vendor:         VendorKarza,
		endpoint:       "v3/voter",
		auth:           karzaAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *karzaVoter) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"epicNo":  in.Get("id_number"),
		"consent": "Y",
	})
}

func (a *karzaVoter) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("result")
	if len(result) == 0 {
		return nil, false
	}
	voterID := result.str("epicNo")
	if voterID == "" {
		voterID = in.Get("id_number")
	}
	return &models.VoterRecord{
		ClientRef: doc.child("clientData").str("caseId"),

		VoterID:      voterID,
		Name:         result.str("name"),
		RelationName: result.str("rlnName"),
		RelationType: result.str("rlnType"),
		Gender:       result.str("gender"),

		District:                   result.str("district"),
		State:                      result.str("state"),
		AssemblyConstituency:       result.str("acName"),
		AssemblyConstituencyNumber: result.str("acNo"),
		PollingStation:             result.str("psName"),
		PartNumber:                 result.str("partNo"),
		SlNoInPart:                 result.str("slNoInPart"),
		HouseNumber:                result.str("houseNo"),
		LastUpdate:                 result.str("lastUpdate"),
		StateCode:                  result.str("stCode"),

		Vendor: VendorKarza,
		Raw:    raw,
	}, true
}

type surepassVoter struct{ caller }

func newSurepassVoter(client *http.Client, timeout time.Duration) *surepassVoter {
	return &surepassVoter{caller{
		vendor:         VendorSurepass,
		endpoint:       "api/v1/voter-id/voter-id",
		auth:           surepassAuth,
		client:         client,
		defaultTimeout: timeout,
	}}
}

func (a *surepassVoter) BuildRequest(in models.Input) (json.RawMessage, error) {
	return json.Marshal(map[string]any{"id_number": in.Get("id_number")})
}

func (a *surepassVoter) Normalize(raw json.RawMessage, in models.Input) (models.Record, bool) {
	doc := decodeObject(raw)
	result := doc.child("data")
	if len(result) == 0 {
		return nil, false
	}
	voterID := result.str("epic_no")
	if voterID == "" {
		voterID = in.Get("id_number")
	}
	return &models.VoterRecord{
		ClientRef: result.str("client_id"),

		VoterID:      voterID,
		Name:         result.str("name"),
		RelationName: result.str("relation_name"),
		RelationType: result.str("relation_type"),
		Gender:       result.str("gender"),

		District:                   result.str("district"),
		State:                      result.str("state"),
		AssemblyConstituency:       result.str("assembly_constituency"),
		AssemblyConstituencyNumber: result.str("assembly_constituency_number"),
		PollingStation:             result.str("polling_station"),
		PartNumber:                 result.str("part_number"),
		PartName:                   result.str("part_name"),
		SlNoInPart:                 result.str("slno_inpart"),
		HouseNumber:                result.str("house_no"),
		LastUpdate:                 result.str("last_update"),
		StateCode:                  result.str("st_code"),

		Vendor: VendorSurepass,
		Raw:    raw,
	}, true
}
