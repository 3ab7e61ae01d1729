package main

import (
	"time"

	"kycgate/internal/catalog"
	"kycgate/internal/directory"
	"kycgate/internal/entitlement"
	"kycgate/internal/vendors"
	"kycgate/internal/verify/engine"
	"kycgate/internal/verify/records"
)

// devStores builds seeded in-memory stores for local development: one demo
// client entitled to every service, with both vendors assigned against their
// sandbox endpoints.
func devStores() storeSet {
	clients := directory.NewInMemoryStore()
	clients.Put(&directory.Client{
		ID:           1,
		CompanyName:  "Demo Client",
		ContactEmail: "dev@example.com",
		UATKey:       "dev-uat-key",
		CreatedAt:    time.Now(),
	})

	entitlements := entitlement.NewInMemoryStore()
	for _, serviceID := range []catalog.ServiceID{
		catalog.ServicePAN, catalog.ServiceBill, catalog.ServiceVoter,
		catalog.ServiceName, catalog.ServiceRC, catalog.ServiceDriving,
	} {
		entitlements.Put(&entitlement.Entitlement{
			ClientID:  1,
			ServiceID: serviceID,
			Active:    true,
			CacheDays: 7,
		})
	}

	karza := vendors.Vendor{
		ID:         1,
		Name:       "karza",
		UATBaseURL: "https://testapi.karza.in",
		UATKey:     "dev-karza-key",
	}
	surepass := vendors.Vendor{
		ID:         2,
		Name:       "surepass",
		UATBaseURL: "https://sandbox.surepass.io",
		UATKey:     "dev-surepass-token",
	}
	priorities := vendors.NewInMemoryPriorityStore()
	var assignmentID int64
	for _, serviceID := range []catalog.ServiceID{
		catalog.ServicePAN, catalog.ServiceBill, catalog.ServiceVoter,
		catalog.ServiceName, catalog.ServiceRC, catalog.ServiceDriving,
	} {
		assignmentID++
		priorities.Put(vendors.Assignment{
			ID: assignmentID, ClientID: 1, ServiceID: serviceID, Vendor: karza, Priority: 1,
		})
		assignmentID++
		priorities.Put(vendors.Assignment{
			ID: assignmentID, ClientID: 1, ServiceID: serviceID, Vendor: surepass, Priority: 2,
		})
	}

	return storeSet{
		clients:      clients,
		entitlements: entitlements,
		priorities:   priorities,
		records: engine.Stores{
			Pan:            records.NewInMemoryStore(),
			Voter:          records.NewInMemoryStore(),
			Bill:           records.NewInMemoryStore(),
			Rc:             records.NewInMemoryStore(),
			NameMatch:      records.NewInMemoryStore(),
			DrivingLicense: records.NewInMemoryStore(),
		},
	}
}
