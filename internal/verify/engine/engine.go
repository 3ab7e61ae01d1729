// Package engine orchestrates a verification request: validation,
// authentication, entitlement, cache lookup, and the priority-ordered vendor
// failover loop. Every branch writes exactly one audit row before the
// request moves on; no attempt is silently dropped.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"kycgate/internal/directory"
	"kycgate/internal/entitlement"
	"kycgate/internal/platform/config"
	"kycgate/internal/platform/metrics"
	"kycgate/internal/vendors"
	"kycgate/internal/verify/adapters"
	"kycgate/internal/verify/auditlog"
	"kycgate/internal/verify/models"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/requestcontext"
)

// Request is one inbound verification attempt.
type Request struct {
	Service  string
	APIKey   string
	Endpoint string
	Input    models.Input
}

// Outcome is the terminal result the transport layer renders.
type Outcome struct {
	Success bool
	Status  int
	Message string
	Error   string
	Data    json.RawMessage
}

func failure(status int, msg string) Outcome {
	return Outcome{Status: status, Error: msg}
}

// Config wires an Engine. All fields except Metrics and Logger are required.
type Config struct {
	Environment config.Environment
	Services    []Descriptor
	Directory   directory.Store
	Entitlement *entitlement.Resolver
	Priorities  vendors.PriorityStore
	Adapters    *adapters.Registry
	Audit       *auditlog.Logger
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Engine runs the verification state machine. One instance serves all
// services; per-service behavior comes from descriptors.
type Engine struct {
	env      config.Environment
	services map[string]Descriptor
	dir      directory.Store
	entitle  *entitlement.Resolver
	prio     vendors.PriorityStore
	registry *adapters.Registry
	audit    *auditlog.Logger
	metrics  *metrics.Metrics
	logger   *slog.Logger
	validate *validator.Validate
	tracer   trace.Tracer
}

func New(cfg Config) (*Engine, error) {
	if len(cfg.Services) == 0 {
		return nil, errors.New("engine: at least one service descriptor is required")
	}
	if cfg.Directory == nil {
		return nil, errors.New("engine: client directory is required")
	}
	if cfg.Entitlement == nil {
		return nil, errors.New("engine: entitlement resolver is required")
	}
	if cfg.Priorities == nil {
		return nil, errors.New("engine: priority store is required")
	}
	if cfg.Adapters == nil {
		return nil, errors.New("engine: adapter registry is required")
	}
	if cfg.Audit == nil {
		return nil, errors.New("engine: audit logger is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	services := make(map[string]Descriptor, len(cfg.Services))
	for _, d := range cfg.Services {
		services[strings.ToUpper(d.Name)] = d
	}
	return &Engine{
		env:      cfg.Environment,
		services: services,
		dir:      cfg.Directory,
		entitle:  cfg.Entitlement,
		prio:     cfg.Priorities,
		registry: cfg.Adapters,
		audit:    cfg.Audit,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		validate: validator.New(),
		tracer:   otel.Tracer("kycgate/verify"),
	}, nil
}

// Verify runs one request through the state machine and returns the terminal
// outcome. It never returns an error: every failure mode maps to an Outcome
// with the right status code, and every branch has already been audited.
func (e *Engine) Verify(ctx context.Context, req Request) Outcome {
	ctx, span := e.tracer.Start(ctx, "engine.Verify",
		trace.WithAttributes(attribute.String("service", req.Service)))
	defer span.End()

	out := e.verify(ctx, req)

	span.SetAttributes(
		attribute.Int("status", out.Status),
		attribute.Bool("success", out.Success),
	)
	e.metrics.RecordRequest(strings.ToUpper(req.Service), outcomeLabel(out))
	return out
}

func (e *Engine) verify(ctx context.Context, req Request) Outcome {
	desc, ok := e.services[strings.ToUpper(req.Service)]
	if !ok {
		e.writeRejection(ctx, req, 0, "", http.StatusForbidden, "Service not configured")
		return failure(http.StatusForbidden, "Service not configured")
	}
	key := desc.KeyOf(req.Input)

	// Validating
	for _, field := range desc.Required {
		if err := e.validate.Var(strings.TrimSpace(req.Input.Get(field)), "required"); err != nil {
			msg := fmt.Sprintf("%s is required", field)
			e.writeRejection(ctx, req, 0, key, http.StatusBadRequest, msg)
			return failure(http.StatusBadRequest, msg)
		}
	}

	// Authenticating
	if req.APIKey == "" {
		e.writeRejection(ctx, req, 0, key, http.StatusUnauthorized, "Missing API key")
		return failure(http.StatusUnauthorized, "Missing API key")
	}
	client, err := e.dir.FindByAPIKey(ctx, req.APIKey, e.env)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			e.writeRejection(ctx, req, 0, key, http.StatusUnauthorized, "Invalid API key")
			return failure(http.StatusUnauthorized, "Invalid API key")
		}
		e.logger.Error("engine: client lookup failed", "service", desc.Name, "error", err)
		e.writeRejection(ctx, req, 0, key, http.StatusInternalServerError, "Internal error")
		return failure(http.StatusInternalServerError, "Internal error")
	}

	// ResolvingEntitlement
	window, err := e.entitle.Resolve(ctx, client.ID, desc.Name)
	if err != nil {
		status, msg := entitlementFailure(err)
		if status == http.StatusInternalServerError {
			e.logger.Error("engine: entitlement lookup failed", "service", desc.Name, "error", err)
		}
		e.writeRejection(ctx, req, client.ID, key, status, msg)
		return failure(status, msg)
	}

	// CheckingCache
	if rec, err := desc.Records.FindFresh(ctx, key, window.Duration()); err == nil {
		e.metrics.RecordCacheHit(desc.Name)
		return e.serveCached(ctx, req, desc, client.ID, key, rec)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		// A broken cache is not fatal; fall through to the vendors.
		e.logger.Warn("engine: cache lookup failed", "service", desc.Name, "error", err)
	}
	e.metrics.RecordCacheMiss(desc.Name)

	// TryingVendors
	assignments, err := e.prio.ListForClientService(ctx, client.ID, desc.ID)
	if err != nil {
		e.logger.Error("engine: vendor list failed", "service", desc.Name, "error", err)
		e.writeRejection(ctx, req, client.ID, key, http.StatusInternalServerError, "Internal error")
		return failure(http.StatusInternalServerError, "Internal error")
	}
	if len(assignments) == 0 {
		e.writeRejection(ctx, req, client.ID, key, http.StatusForbidden, "No vendors assigned for this service")
		return failure(http.StatusForbidden, "No vendors assigned for this service")
	}

	for _, assignment := range assignments {
		if out, done := e.tryVendor(ctx, req, desc, client.ID, key, assignment.Vendor); done {
			return out
		}
	}

	// AllVendorsExhausted
	e.audit.Write(ctx, auditlog.Row{
		ClientID:       client.ID,
		Service:        desc.Name,
		NaturalKey:     strings.ToUpper(key),
		Endpoint:       req.Endpoint,
		StatusCode:     http.StatusNotFound,
		Status:         auditlog.StatusFail,
		RequestPayload: req.Input.Raw,
		ErrorMessage:   "No vendor returned valid data",
	})
	return failure(http.StatusNotFound, "No vendor returned valid data")
}

// tryVendor runs one vendor attempt. done is false when the loop should
// continue to the next vendor. A panic inside an adapter is recovered,
// logged as a 500 attempt, and the loop continues: one broken integration
// must never abort the remaining vendors.
func (e *Engine) tryVendor(ctx context.Context, req Request, desc Descriptor, clientID int64, key string, vendor vendors.Vendor) (out Outcome, done bool) {
	ctx, span := e.tracer.Start(ctx, "engine.tryVendor",
		trace.WithAttributes(
			attribute.String("service", desc.Name),
			attribute.String("vendor", vendor.Name),
		))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("engine: vendor attempt panicked",
				"service", desc.Name, "vendor", vendor.Name, "panic", r)
			e.metrics.RecordVendorAttempt(desc.Name, vendor.Name, "panic")
			e.writeAttemptFailure(ctx, req, desc, clientID, key, vendor.Name,
				http.StatusInternalServerError, nil, fmt.Sprintf("internal error: %v", r))
			out, done = Outcome{}, false
		}
	}()

	adapter, ok := e.registry.Lookup(desc.ID, vendor.Name)
	if !ok {
		e.writeAttemptFailure(ctx, req, desc, clientID, key, vendor.Name,
			http.StatusInternalServerError, nil, fmt.Sprintf("no %s integration for vendor %s", desc.Name, vendor.Name))
		return Outcome{}, false
	}

	payload, err := adapter.BuildRequest(req.Input)
	if err != nil {
		e.writeAttemptFailure(ctx, req, desc, clientID, key, vendor.Name,
			http.StatusInternalServerError, nil, fmt.Sprintf("build request: %v", err))
		return Outcome{}, false
	}

	started := time.Now()
	result := adapter.Call(ctx, vendor, e.env, payload)
	e.metrics.ObserveVendorCall(desc.Name, vendor.Name, time.Since(started).Seconds())

	if result.Failed() {
		status := result.Transport.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		e.metrics.RecordVendorAttempt(desc.Name, vendor.Name, "transport_error")
		e.audit.Write(ctx, auditlog.Row{
			ClientID:        clientID,
			Service:         desc.Name,
			NaturalKey:      strings.ToUpper(key),
			Vendor:          vendor.Name,
			Endpoint:        req.Endpoint,
			StatusCode:      status,
			Status:          auditlog.StatusFail,
			RequestPayload:  payload,
			ResponsePayload: rawOrNil(result.Transport.Body),
			ErrorMessage:    result.Transport.Message,
		})
		return Outcome{}, false
	}

	rec, ok := adapter.Normalize(result.Raw, req.Input)
	if !ok {
		e.metrics.RecordVendorAttempt(desc.Name, vendor.Name, "miss")
		e.audit.Write(ctx, auditlog.Row{
			ClientID:        clientID,
			Service:         desc.Name,
			NaturalKey:      strings.ToUpper(key),
			Vendor:          vendor.Name,
			Endpoint:        req.Endpoint,
			StatusCode:      http.StatusNoContent,
			Status:          auditlog.StatusFail,
			RequestPayload:  payload,
			ResponsePayload: result.Raw,
			ErrorMessage:    "No valid data returned",
		})
		return Outcome{}, false
	}

	rec.Stamp(clientID, requestcontext.Now(ctx).UTC())
	if err := desc.Records.Save(ctx, rec); err != nil {
		e.logger.Error("engine: record save failed", "service", desc.Name, "vendor", vendor.Name, "error", err)
		e.writeAttemptFailure(ctx, req, desc, clientID, key, vendor.Name,
			http.StatusInternalServerError, result.Raw, fmt.Sprintf("save record: %v", err))
		return Outcome{}, false
	}

	data, err := json.Marshal(rec)
	if err != nil {
		e.writeAttemptFailure(ctx, req, desc, clientID, key, vendor.Name,
			http.StatusInternalServerError, result.Raw, fmt.Sprintf("serialize record: %v", err))
		return Outcome{}, false
	}

	recordID := rec.RecordID()
	e.metrics.RecordVendorAttempt(desc.Name, vendor.Name, "success")
	e.audit.Write(ctx, auditlog.Row{
		ClientID:        clientID,
		Service:         desc.Name,
		NaturalKey:      strings.ToUpper(key),
		Vendor:          vendor.Name,
		Endpoint:        req.Endpoint,
		StatusCode:      http.StatusOK,
		Status:          auditlog.StatusSuccess,
		RequestPayload:  payload,
		ResponsePayload: data,
		RecordID:        &recordID,
	})
	return Outcome{
		Success: true,
		Status:  http.StatusOK,
		Message: fmt.Sprintf("Data from %s", vendor.Name),
		Data:    data,
	}, true
}

func (e *Engine) serveCached(ctx context.Context, req Request, desc Descriptor, clientID int64, key string, rec models.Record) Outcome {
	data, err := json.Marshal(rec)
	if err != nil {
		e.logger.Error("engine: serialize cached record failed", "service", desc.Name, "error", err)
		e.writeRejection(ctx, req, clientID, key, http.StatusInternalServerError, "Internal error")
		return failure(http.StatusInternalServerError, "Internal error")
	}
	recordID := rec.RecordID()
	e.audit.Write(ctx, auditlog.Row{
		ClientID:        clientID,
		Service:         desc.Name,
		NaturalKey:      strings.ToUpper(key),
		Vendor:          auditlog.VendorCache,
		Endpoint:        req.Endpoint,
		StatusCode:      http.StatusOK,
		Status:          auditlog.StatusSuccess,
		RequestPayload:  req.Input.Raw,
		ResponsePayload: data,
		RecordID:        &recordID,
	})
	return Outcome{
		Success: true,
		Status:  http.StatusOK,
		Message: "Cached data",
		Data:    data,
	}
}

// writeRejection audits a terminal failure reached before any vendor call.
func (e *Engine) writeRejection(ctx context.Context, req Request, clientID int64, key string, status int, msg string) {
	e.audit.Write(ctx, auditlog.Row{
		ClientID:       clientID,
		Service:        strings.ToUpper(req.Service),
		NaturalKey:     strings.ToUpper(key),
		Endpoint:       req.Endpoint,
		StatusCode:     status,
		Status:         auditlog.StatusFail,
		RequestPayload: req.Input.Raw,
		ErrorMessage:   msg,
	})
}

// writeAttemptFailure audits a failed attempt against one vendor.
func (e *Engine) writeAttemptFailure(ctx context.Context, req Request, desc Descriptor, clientID int64, key, vendor string, status int, response json.RawMessage, msg string) {
	e.audit.Write(ctx, auditlog.Row{
		ClientID:        clientID,
		Service:         desc.Name,
		NaturalKey:      strings.ToUpper(key),
		Vendor:          vendor,
		Endpoint:        req.Endpoint,
		StatusCode:      status,
		Status:          auditlog.StatusFail,
		RequestPayload:  req.Input.Raw,
		ResponsePayload: response,
		ErrorMessage:    msg,
	})
}

func entitlementFailure(err error) (int, string) {
	switch {
	case errors.Is(err, entitlement.ErrServiceNotConfigured):
		return http.StatusForbidden, "Service not configured"
	case errors.Is(err, entitlement.ErrEntitlementMissing):
		return http.StatusForbidden, "Service is not enabled for this client"
	case errors.Is(err, entitlement.ErrEntitlementDisabled):
		return http.StatusForbidden, "Service is not permitted for this client"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func outcomeLabel(out Outcome) string {
	if out.Success {
		return "success"
	}
	return fmt.Sprintf("fail_%d", out.Status)
}

func rawOrNil(body string) json.RawMessage {
	if body == "" {
		return nil
	}
	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(body)
	if err != nil {
		return nil
	}
	return quoted
}
