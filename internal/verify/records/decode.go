package records

import (
	"encoding/json"
	"fmt"

	"kycgate/internal/verify/models"
)

// Decode functions rebuild each service's concrete record type from its
// serialized form. The Redis layer and the document-backed postgres stores
// both round-trip records through JSON.

func decodeInto[T models.Record](data []byte, rec T) (models.Record, error) {
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func DecodePan(data []byte) (models.Record, error) {
	return decodeInto(data, &models.PanRecord{})
}

func DecodeVoter(data []byte) (models.Record, error) {
	return decodeInto(data, &models.VoterRecord{})
}

func DecodeBill(data []byte) (models.Record, error) {
	return decodeInto(data, &models.BillRecord{})
}

func DecodeRc(data []byte) (models.Record, error) {
	return decodeInto(data, &models.RcRecord{})
}

func DecodeNameMatch(data []byte) (models.Record, error) {
	return decodeInto(data, &models.NameMatchRecord{})
}

func DecodeDrivingLicense(data []byte) (models.Record, error) {
	return decodeInto(data, &models.DrivingLicenseRecord{})
}
