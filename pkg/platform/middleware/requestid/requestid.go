package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"kycgate/pkg/requestcontext"
)

// Header is the response header carrying the correlation ID back to callers.
const Header = "X-Request-ID"

// RequestID assigns every request a UUID correlation ID, honoring one supplied
// by the caller. The ID threads through logs and audit rows.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)

		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
