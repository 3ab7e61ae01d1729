package directory

import (
	"time"

	"kycgate/internal/platform/config"
)

// Client is an organization permitted to call the gateway. Rows are owned by
// the admin surface; the gateway only reads them.
type Client struct {
	ID            int64
	CompanyName   string
	ContactEmail  string
	UATKey        string
	ProductionKey string
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// KeyFor returns the API key matching the deployment environment.
func (c Client) KeyFor(env config.Environment) string {
	if env == config.EnvProduction {
		return c.ProductionKey
	}
	return c.UATKey
}
