// Package handler exposes the verification engine over HTTP. One route per
// service; every route decodes into the same canonical input shape and
// delegates to the engine.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"kycgate/internal/verify/engine"
	"kycgate/internal/verify/models"
	"kycgate/pkg/platform/httputil"
)

// maxBodyBytes bounds inbound request bodies; verification inputs are a
// handful of short fields.
const maxBodyBytes = 1 << 20

// Handler serves the verification endpoints.
type Handler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func New(eng *engine.Engine, logger *slog.Logger) (*Handler, error) {
	if eng == nil {
		return nil, errors.New("handler: engine is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{engine: eng, logger: logger}, nil
}

// Verify returns the handler for one service's endpoint.
func (h *Handler) Verify(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeInput(r)
		if err != nil {
			httputil.WriteFailure(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		out := h.engine.Verify(r.Context(), engine.Request{
			Service:  service,
			APIKey:   r.Header.Get("X-API-KEY"),
			Endpoint: r.URL.Path,
			Input:    in,
		})
		if out.Success {
			httputil.WriteSuccess(w, out.Status, out.Message, out.Data)
			return
		}
		httputil.WriteFailure(w, out.Status, out.Error)
	}
}

// decodeInput reads the body once, keeping the raw bytes for audit rows and
// flattening top-level values to strings for the engine. Nested objects and
// arrays are not input fields and are ignored.
func decodeInput(r *http.Request) (models.Input, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return models.Input{}, err
	}
	fields := make(map[string]string)
	if len(body) > 0 {
		var doc map[string]any
		if err := json.Unmarshal(body, &doc); err != nil {
			return models.Input{}, err
		}
		for k, v := range doc {
			if s := stringifyField(v); s != "" {
				fields[k] = s
			}
		}
	}
	return models.Input{Fields: fields, Raw: body}, nil
}

func stringifyField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		b, _ := json.Marshal(t)
		return string(b)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
