package metadata

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"kycgate/pkg/requestcontext"
)

// ClientMetadata extracts the client IP address and User-Agent from the
// request and adds them to the context. Audit rows capture both verbatim, so
// this middleware must run before any verification handler.
func ClientMetadata(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIPFromRequest(r)
			ua := r.Header.Get("User-Agent")

			ctx := requestcontext.WithClientMetadata(r.Context(), ip, ua)

			if logger != nil && logger.Enabled(ctx, slog.LevelDebug) {
				logger.DebugContext(ctx, "client metadata",
					"ip", ip,
					"agent", SummarizeUserAgent(ua),
					"request_id", requestcontext.RequestID(ctx),
				)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SummarizeUserAgent reduces a raw User-Agent header to "browser/version (os)"
// for log lines. The raw header still goes into audit rows untouched.
func SummarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	parsed := useragent.New(raw)
	name, version := parsed.Browser()
	if name == "" {
		return raw
	}
	var b strings.Builder
	b.WriteString(name)
	if version != "" {
		b.WriteString("/")
		b.WriteString(version)
	}
	if os := parsed.OS(); os != "" {
		b.WriteString(" (")
		b.WriteString(os)
		b.WriteString(")")
	}
	return b.String()
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load
// balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...);
	// the first is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" (or "[::1]:port" for IPv6).
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return ""
}
