// Package catalog holds the static service catalog. Service IDs are stable
// reference data shared with entitlement and priority rows; they never change
// at runtime.
package catalog

import "strings"

// ServiceID identifies a verification capability.
type ServiceID int

const (
	ServicePAN     ServiceID = 1
	ServiceBill    ServiceID = 2
	ServiceVoter   ServiceID = 3
	ServiceName    ServiceID = 4
	ServiceRC      ServiceID = 5
	ServiceDriving ServiceID = 6
)

var byName = map[string]ServiceID{
	"PAN":     ServicePAN,
	"BILL":    ServiceBill,
	"VOTER":   ServiceVoter,
	"NAME":    ServiceName,
	"RC":      ServiceRC,
	"DRIVING": ServiceDriving,
}

var names = map[ServiceID]string{
	ServicePAN:     "PAN",
	ServiceBill:    "BILL",
	ServiceVoter:   "VOTER",
	ServiceName:    "NAME",
	ServiceRC:      "RC",
	ServiceDriving: "DRIVING",
}

// Lookup resolves a service name to its ID. Matching is case-insensitive.
func Lookup(name string) (ServiceID, bool) {
	id, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

func (s ServiceID) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return "UNKNOWN"
}
