package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr        string `envconfig:"APP_ADDR" default:":8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// DatabaseURL is optional; without it profiles live in memory.
	DatabaseURL       string `envconfig:"DATABASE_URL"`
	RunMigrations     bool   `envconfig:"RUN_MIGRATIONS" default:"true"`
	DataEncryptionKey string `envconfig:"DATA_ENCRYPTION_KEY"`

	MaxBodyBytes             int64    `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	RateLimitPerMinute       int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`
	ExportRateLimitPerMinute int      `envconfig:"EXPORT_RATE_LIMIT_PER_MINUTE" default:"10"`
	MaxExportPages           int      `envconfig:"MAX_EXPORT_PAGES" default:"52"`
	CORSAllowedOrigins       []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	MetricsEnabled           bool     `envconfig:"METRICS_ENABLED" default:"true"`

	// FrontendDir holds the built editor; empty serves the API only.
	FrontendDir string `envconfig:"FRONTEND_DIR"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if c.IsProduction() && strings.TrimSpace(c.DatabaseURL) != "" && strings.TrimSpace(c.DataEncryptionKey) == "" {
		return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.ExportRateLimitPerMinute <= 0 {
		return fmt.Errorf("EXPORT_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.MaxExportPages < 1 || c.MaxExportPages > 520 {
		return fmt.Errorf("MAX_EXPORT_PAGES must be between 1 and 520")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
