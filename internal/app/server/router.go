package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"paystub/internal/domain/export"
	"paystub/internal/domain/profile"
	"paystub/internal/platform/config"
	"paystub/internal/platform/metrics"
	"paystub/internal/transport/http/api"
	paystubhandler "paystub/internal/transport/http/handlers/paystub"
	profileshandler "paystub/internal/transport/http/handlers/profiles"
	"paystub/internal/transport/http/middleware"
)

// Deps are the collaborators the router is built from. Metrics and Ready
// may be nil.
type Deps struct {
	Config   config.Config
	Logger   *slog.Logger
	Profiles profile.StoreAPI
	Exporter *export.Exporter
	Metrics  *metrics.Collector
	Ready    func(ctx context.Context) error
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID", "X-Statement-Pages"},
		MaxAge:         300,
	}))
	router.Use(deps.Metrics.Middleware)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.NotFound(w, "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, api.CodeMethodNotAllowed, "method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				logger.Warn("readiness check failed", "err", err)
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if cfg.MetricsEnabled && deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	exportLimit := middleware.RateLimit(cfg.ExportRateLimitPerMinute, time.Minute)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

		paystubHandler := paystubhandler.NewHandler(deps.Exporter, deps.Metrics, cfg.MaxExportPages)
		paystubHandler.RegisterRoutes(r, exportLimit)

		profileService := profile.NewService(deps.Profiles, deps.Exporter, cfg.MaxExportPages)
		profilesHandler := profileshandler.NewHandler(profileService, deps.Metrics, cfg.MaxExportPages)
		profilesHandler.RegisterRoutes(r, exportLimit)
	})

	if strings.TrimSpace(cfg.FrontendDir) != "" {
		router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	}
	return router
}

// spaHandler serves the editor build, falling back to index.html for client
// side routes.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		api.NotFound(w, "route not found", middleware.GetRequestID(r.Context()))
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}
	if err == nil || os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}
	http.NotFound(w, r)
}
