package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"paystub/internal/domain/export"
	"paystub/internal/domain/profile"
	"paystub/internal/platform/config"
	cryptoutil "paystub/internal/platform/crypto"
	"paystub/internal/platform/db"
	"paystub/internal/platform/logging"
	"paystub/internal/platform/metrics"
)

// Run serves until ctx is cancelled and then drains in-flight requests
// within SHUTDOWN_TIMEOUT.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel).With(
		slog.String("app", "paystub"),
		slog.String("env", cfg.Environment),
	)
	slog.SetDefault(logger)

	deps := Deps{
		Config:   cfg,
		Logger:   logger,
		Profiles: profile.NewMemoryStore(),
		Exporter: export.NewExporter(),
	}
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}

	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
		}
		crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
		if err != nil {
			return fmt.Errorf("encryption key: %w", err)
		}
		if !crypto.Configured() {
			logger.Warn("DATA_ENCRYPTION_KEY not set; profile identifiers are stored unencrypted")
		}
		deps.Profiles = profile.NewPostgresStore(pool, crypto)
		deps.Ready = pool.Ping
	} else {
		logger.Warn("DATABASE_URL not set; pay profiles are kept in memory")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(deps),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("paystub server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
