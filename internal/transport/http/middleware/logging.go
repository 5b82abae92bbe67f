package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"

	"paystub/internal/platform/logging"
)

var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// Logger writes one record per request. Successful health check and scrape
// requests are skipped.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: logging.Schema,
		Skip: func(req *http.Request, respStatus int) bool {
			return quietPaths[req.URL.Path] && respStatus < http.StatusBadRequest
		},
	})
}
