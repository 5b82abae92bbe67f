package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.DatabaseURL)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, 10, cfg.ExportRateLimitPerMinute)
	assert.Equal(t, 52, cfg.MaxExportPages)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("MAX_EXPORT_PAGES", "26")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("READ_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 26, cfg.MaxExportPages)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAX_EXPORT_PAGES", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			LogFormat:                "json",
			MaxBodyBytes:             4096,
			RateLimitPerMinute:       60,
			ExportRateLimitPerMinute: 10,
			MaxExportPages:           52,
			ShutdownTimeout:          time.Second,
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"LOG_FORMAT":                   func(c *Config) { c.LogFormat = "pretty" },
		"MAX_BODY_BYTES":               func(c *Config) { c.MaxBodyBytes = 10 },
		"RATE_LIMIT_PER_MINUTE":        func(c *Config) { c.RateLimitPerMinute = 0 },
		"EXPORT_RATE_LIMIT_PER_MINUTE": func(c *Config) { c.ExportRateLimitPerMinute = -1 },
		"MAX_EXPORT_PAGES":             func(c *Config) { c.MaxExportPages = 521 },
		"SHUTDOWN_TIMEOUT":             func(c *Config) { c.ShutdownTimeout = 0 },
		"DATA_ENCRYPTION_KEY": func(c *Config) {
			c.Environment = "production"
			c.DatabaseURL = "postgres://localhost/paystub"
		},
	}
	for name, mutate := range cases {
		cfg := valid()
		mutate(&cfg)
		err := cfg.Validate()
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), name)
	}
}
