// Package auditlog records every verification attempt: one row per vendor
// call, cache hit, or terminal failure. Rows are append-only and written on
// every code path, including validation and auth rejections.
package auditlog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kycgate/pkg/requestcontext"
)

// VendorCache marks rows served from the record cache instead of a vendor.
const VendorCache = "CACHE"

// Row statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Row is one audit entry.
type Row struct {
	ID         uuid.UUID `json:"id"`
	ClientID   int64     `json:"client_id"`
	Service    string    `json:"service"`
	NaturalKey string    `json:"natural_key"`

	// Vendor is the vendor attempted, VendorCache for cache hits, or empty
	// for rejections that never reached a vendor.
	Vendor   string `json:"vendor,omitempty"`
	Endpoint string `json:"endpoint"`

	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`

	RequestPayload  json.RawMessage `json:"request_payload,omitempty"`
	ResponsePayload json.RawMessage `json:"response_payload,omitempty"`
	ErrorMessage    string          `json:"error_message,omitempty"`

	IPAddress string     `json:"ip_address,omitempty"`
	UserAgent string     `json:"user_agent,omitempty"`
	RecordID  *uuid.UUID `json:"record_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Store is an audit sink.
type Store interface {
	Append(ctx context.Context, row Row) error
}

// Logger is the engine-facing facade. It stamps rows with identity, time and
// client metadata from the context, then appends them. Audit failures are
// logged and swallowed: a broken sink must never fail a verification.
type Logger struct {
	store  Store
	logger *slog.Logger
}

func NewLogger(store Store, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{store: store, logger: logger}
}

// Write stamps and appends one row.
func (l *Logger) Write(ctx context.Context, row Row) {
	if l == nil || l.store == nil {
		return
	}
	row.ID = uuid.New()
	row.CreatedAt = requestcontext.Now(ctx).UTC()
	if row.IPAddress == "" {
		row.IPAddress = requestcontext.ClientIP(ctx)
	}
	if row.UserAgent == "" {
		row.UserAgent = requestcontext.UserAgent(ctx)
	}
	if err := l.store.Append(ctx, row); err != nil {
		l.logger.Error("auditlog: append failed",
			"service", row.Service,
			"status_code", row.StatusCode,
			"error", err,
		)
	}
}
