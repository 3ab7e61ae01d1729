package vendors

import (
	"time"

	"kycgate/internal/catalog"
	"kycgate/internal/platform/config"
)

// Vendor is an upstream verification provider. The Name field selects adapter
// logic; everything else is connection data. Rows are owned by the admin
// surface and read-only here.
type Vendor struct {
	ID            int64
	Name          string // adapter key: "karza", "surepass"
	DisplayName   string
	UATBaseURL    string
	ProdBaseURL   string
	UATKey        string
	ProductionKey string
	Timeout       time.Duration // zero means use the process default
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// BaseURL returns the endpoint root for the deployment environment.
func (v Vendor) BaseURL(env config.Environment) string {
	if env == config.EnvProduction {
		return v.ProdBaseURL
	}
	return v.UATBaseURL
}

// Credential returns the per-vendor-row key for the environment. Both vendor
// auth schemes resolve through here; there is no process-wide shared secret.
func (v Vendor) Credential(env config.Environment) string {
	if env == config.EnvProduction {
		return v.ProductionKey
	}
	return v.UATKey
}

// CallTimeout returns the per-call timeout, falling back to the supplied
// default when the row has none configured.
func (v Vendor) CallTimeout(fallback time.Duration) time.Duration {
	if v.Timeout > 0 {
		return v.Timeout
	}
	if fallback > 0 {
		return fallback
	}
	return 30 * time.Second
}

// Assignment is one row of the vendor priority list: a vendor bound to a
// (client, service) pair at a position. Lower priority numbers are tried
// first.
type Assignment struct {
	ID        int64
	ClientID  int64
	ServiceID catalog.ServiceID
	Vendor    Vendor
	Priority  int
	CreatedAt time.Time
	DeletedAt *time.Time
}
