// Package adapters translates between the gateway's canonical shapes and each
// vendor's wire format. One adapter exists per {service × vendor} pair; the
// engine looks them up through the Registry and never branches on vendor
// names itself.
package adapters

import (
	"context"
	"encoding/json"

	"kycgate/internal/platform/config"
	"kycgate/internal/vendors"
	"kycgate/internal/verify/models"
)

// Vendor adapter keys. These match vendor_management.name rows.
const (
	VendorKarza    = "karza"
	VendorSurepass = "surepass"
)

// TransportError captures a failed vendor call: network failure, timeout,
// non-2xx status, or an unparsable body. It is data, not a Go error — the
// engine logs it and moves to the next vendor without exception-style control
// flow.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response arrived.
	StatusCode int
	// Body is the vendor's response body, kept for the audit row.
	Body string
	// Message is the operator-facing failure description.
	Message string
}

// CallResult is the tagged result of one vendor call: exactly one of Raw
// (2xx JSON body) or Transport is set.
type CallResult struct {
	Raw       json.RawMessage
	Transport *TransportError
}

// Failed reports whether the call ended in a transport error.
func (r CallResult) Failed() bool { return r.Transport != nil }

// Ok wraps a successful raw response.
func Ok(raw json.RawMessage) CallResult {
	return CallResult{Raw: raw}
}

// Failure wraps a transport error.
func Failure(statusCode int, body, message string) CallResult {
	return CallResult{Transport: &TransportError{
		StatusCode: statusCode,
		Body:       body,
		Message:    message,
	}}
}

// Adapter is the per-{service × vendor} translation unit.
type Adapter interface {
	// VendorName returns the adapter key ("karza", "surepass").
	VendorName() string

	// BuildRequest maps canonical input fields to the vendor's payload.
	// Pure; no I/O.
	BuildRequest(in models.Input) (json.RawMessage, error)

	// Call POSTs the payload to the vendor with its auth scheme and per-row
	// timeout. All failures come back as CallResult.Transport, never as a
	// panic or Go error.
	Call(ctx context.Context, v vendors.Vendor, env config.Environment, payload json.RawMessage) CallResult

	// Normalize maps the vendor's response back to a canonical record.
	// Returns false when the result envelope is empty or the identity field
	// is missing — the signal to try the next vendor.
	Normalize(raw json.RawMessage, in models.Input) (models.Record, bool)
}
