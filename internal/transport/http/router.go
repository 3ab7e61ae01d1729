// Package httptransport assembles the public router: the six verification
// endpoints, health, and the metrics scrape target.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kycgate/internal/verify/handler"
	"kycgate/pkg/platform/middleware/metadata"
	"kycgate/pkg/platform/middleware/requestid"
	"kycgate/pkg/platform/middleware/requesttime"
)

// NewRouter builds the full middleware chain and mounts every route.
func NewRouter(h *handler.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.RequestID)
	r.Use(requesttime.RequestTime)
	r.Use(metadata.ClientMetadata(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/pan", h.Verify("PAN"))
		r.Post("/voter", h.Verify("VOTER"))
		r.Post("/bill", h.Verify("BILL"))
		r.Post("/rc", h.Verify("RC"))
		r.Post("/name", h.Verify("NAME"))
		r.Post("/driving-license", h.Verify("DRIVING"))
	})

	return r
}
