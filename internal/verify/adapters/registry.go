package adapters

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"kycgate/internal/catalog"
)

type registryKey struct {
	service catalog.ServiceID
	vendor  string
}

// Registry resolves the adapter for a {service, vendor} pair. Vendor names
// come from vendor_management rows and are matched case-insensitively.
type Registry struct {
	adapters map[registryKey]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[registryKey]Adapter)}
}

// Register adds an adapter for a service. Registering the same pair twice is
// a programming error.
func (r *Registry) Register(service catalog.ServiceID, a Adapter) error {
	key := registryKey{service: service, vendor: strings.ToLower(a.VendorName())}
	if _, exists := r.adapters[key]; exists {
		return fmt.Errorf("adapter already registered for %s/%s", service, a.VendorName())
	}
	r.adapters[key] = a
	return nil
}

// Lookup returns the adapter for the pair, or false when the vendor has no
// integration for this service.
func (r *Registry) Lookup(service catalog.ServiceID, vendorName string) (Adapter, bool) {
	a, ok := r.adapters[registryKey{service: service, vendor: strings.ToLower(vendorName)}]
	return a, ok
}

// NewDefaultRegistry wires every built-in vendor integration. The client
// should have no Timeout of its own; per-call deadlines come from the vendor
// row with defaultTimeout as fallback.
func NewDefaultRegistry(client *http.Client, defaultTimeout time.Duration) (*Registry, error) {
	if client == nil {
		client = &http.Client{}
	}

	r := NewRegistry()
	regs := []struct {
		service catalog.ServiceID
		adapter Adapter
	}{
		{catalog.ServicePAN, newKarzaPan(client, defaultTimeout)},
		{catalog.ServicePAN, newSurepassPan(client, defaultTimeout)},
		{catalog.ServiceVoter, newKarzaVoter(client, defaultTimeout)},
		{catalog.ServiceVoter, newSurepassVoter(client, defaultTimeout)},
		{catalog.ServiceBill, newKarzaBill(client, defaultTimeout)},
		{catalog.ServiceBill, newSurepassBill(client, defaultTimeout)},
		{catalog.ServiceRC, newKarzaRc(client, defaultTimeout)},
		{catalog.ServiceRC, newSurepassRc(client, defaultTimeout)},
		{catalog.ServiceName, newKarzaName(client, defaultTimeout)},
		{catalog.ServiceName, newSurepassName(client, defaultTimeout)},
		{catalog.ServiceDriving, newKarzaDriving(client, defaultTimeout)},
		{catalog.ServiceDriving, newSurepassDriving(client, defaultTimeout)},
	}
	for _, reg := range regs {
		if err := r.Register(reg.service, reg.adapter); err != nil {
			return nil, err
		}
	}
	return r, nil
}
