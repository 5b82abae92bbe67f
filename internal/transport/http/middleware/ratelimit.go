package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"paystub/internal/transport/http/api"
)

// RateLimit allows limit requests per window for each client IP. Rejected
// requests get the standard JSON envelope with code rate_limited.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit exceeded",
				"path", r.URL.Path,
				"method", r.Method,
				"limit", limit,
				"windowSec", int(window.Seconds()),
			)
			api.Fail(w, http.StatusTooManyRequests, api.CodeRateLimited, "too many requests", GetRequestID(r.Context()))
		}),
	)
}
