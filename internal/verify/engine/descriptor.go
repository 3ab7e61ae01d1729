package engine

import (
	"fmt"

	"kycgate/internal/catalog"
	"kycgate/internal/verify/models"
	"kycgate/internal/verify/records"
)

// Descriptor is everything service-specific the engine needs: the required
// input fields, how to derive the cache key, and where canonical records
// live. One engine instance serves all six services through these.
type Descriptor struct {
	Name     string
	ID       catalog.ServiceID
	Required []string
	KeyOf    func(models.Input) string
	Records  records.Store
}

// Stores carries one record store per service when building the default
// descriptor set.
type Stores struct {
	Pan            records.Store
	Voter          records.Store
	Bill           records.Store
	Rc             records.Store
	NameMatch      records.Store
	DrivingLicense records.Store
}

// DefaultDescriptors builds descriptors for every supported service.
func DefaultDescriptors(stores Stores) ([]Descriptor, error) {
	descs := []Descriptor{
		{
			Name:     "PAN",
			ID:       catalog.ServicePAN,
			Required: []string{"pan"},
			KeyOf:    func(in models.Input) string { return in.Get("pan") },
			Records:  stores.Pan,
		},
		{
			Name:     "VOTER",
			ID:       catalog.ServiceVoter,
			Required: []string{"id_number"},
			KeyOf:    func(in models.Input) string { return in.Get("id_number") },
			Records:  stores.Voter,
		},
		{
			Name:     "BILL",
			ID:       catalog.ServiceBill,
			Required: []string{"consumer_id", "service_provider"},
			KeyOf:    func(in models.Input) string { return in.Get("consumer_id") },
			Records:  stores.Bill,
		},
		{
			Name:     "RC",
			ID:       catalog.ServiceRC,
			Required: []string{"rc_number"},
			KeyOf:    func(in models.Input) string { return in.Get("rc_number") },
			Records:  stores.Rc,
		},
		{
			Name:     "NAME",
			ID:       catalog.ServiceName,
			Required: []string{"name_1", "name_2"},
			KeyOf:    func(in models.Input) string { return models.NameMatchKey(in.Get("name_1"), in.Get("name_2")) },
			Records:  stores.NameMatch,
		},
		{
			Name:     "DRIVING",
			ID:       catalog.ServiceDriving,
			Required: []string{"license_no", "dob"},
			KeyOf:    func(in models.Input) string { return in.Get("license_no") },
			Records:  stores.DrivingLicense,
		},
	}
	for _, d := range descs {
		if d.Records == nil {
			return nil, fmt.Errorf("engine: record store for %s is required", d.Name)
		}
	}
	return descs, nil
}
