package requesttime

import (
	"net/http"
	"time"

	"kycgate/pkg/requestcontext"
)

// RequestTime pins a single observation of "now" into the context so that
// every consumer in the request (cache cutoffs, audit timestamps) sees the
// same instant.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
