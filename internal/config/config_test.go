package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 10.0, cfg.HTTP.RateLimit.RequestsPerSecond)
	require.Equal(t, "json", cfg.Log.Format)
	require.False(t, cfg.Tracing.Enabled)
	require.Empty(t, cfg.Ephemeris.LunarTermsPath)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
  readTimeout: 2s
  rateLimit:
    enabled: true
    requestsPerSecond: 3
    burst: 4
log:
  level: debug
  format: text
ephemeris:
  lunarTermsPath: /data/terms.yaml
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_RATE_LIMIT_BURST", "9")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_EXPORTER", "OTLP")
	t.Setenv("OTLP_ENDPOINT", "collector:4317")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	require.Equal(t, 3.0, cfg.HTTP.RateLimit.RequestsPerSecond)
	require.Equal(t, 9, cfg.HTTP.RateLimit.Burst)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Tracing.Enabled)
	require.Equal(t, "otlp", cfg.Tracing.Exporter)
	require.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
	require.Equal(t, "/data/terms.yaml", cfg.Ephemeris.LunarTermsPath)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		require.ErrorContains(t, err, "read config file")
	})

	t.Run("bad yaml", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "http: [unclosed"))
		_, err := Load()
		require.ErrorContains(t, err, "parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "log:\n  format: xml\n"))
		_, err := Load()
		require.ErrorContains(t, err, "invalid config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }, "http.address"},
		{"zero rps", func(c *Config) { c.HTTP.RateLimit.RequestsPerSecond = 0 }, "requestsPerSecond"},
		{"zero burst", func(c *Config) { c.HTTP.RateLimit.Burst = 0 }, "burst"},
		{"bad exporter", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.Exporter = "zipkin" }, "tracing.exporter"},
		{"bad ratio", func(c *Config) { c.Tracing.SampleRatio = 1.5 }, "sampleRatio"},
		{"bad metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	disabled := Default()
	disabled.HTTP.RateLimit = RateLimitConfig{Enabled: false}
	require.NoError(t, disabled.Validate())
}
