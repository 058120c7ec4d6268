package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears every variable Load reads so the host environment does
// not leak into assertions.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "VERSION",
		"HTTP_REQUEST_TIMEOUT", "HTTP_READ_HEADER_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT", "HTTP_MAX_BODY_BYTES",
		"LOG_LEVEL", "LOG_FORMAT",
		"PAGE_FETCH_TIMEOUT", "PAGE_FETCH_PARALLELISM", "PAGE_FETCH_MAX_BODY_SIZE",
		"PAGE_FETCH_MAX_REDIRECTS", "PAGE_FETCH_DENY_PRIVATE_IPS", "PAGE_FETCH_USER_AGENT",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_TRUSTED_PROXIES",
		"CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS", "CORS_MAX_AGE",
		"OTEL_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":3000", cfg.Server.Addr())
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Fetch.DenyPrivateIPs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("VERSION", "1.2.3")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "45s")
	t.Setenv("HTTP_MAX_BODY_BYTES", "2048")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("PAGE_FETCH_PARALLELISM", "8")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")
	t.Setenv("OTEL_SERVICE_NAME", "insight-staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "1.2.3", cfg.Server.Version)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Fetch.Parallelism)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 4, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.RateLimit.TrustedProxies)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "insight-staging", cfg.Tracing.ServiceName)
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "config.yaml", `
server:
  port: "9000"
  shutdown_timeout: 10s
fetch:
  timeout: 5s
  user_agent: insight-bot/1.0
rate_limit:
  enabled: false
cors:
  allowed_origins:
    - https://ui.example.com
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	// env wins over the file
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "insight-bot/1.0", cfg.Fetch.UserAgent)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"https://ui.example.com"}, cfg.CORS.AllowedOrigins)

	// untouched keys keep their defaults
	assert.Equal(t, 4, cfg.Fetch.Parallelism)
	assert.Equal(t, "dev", cfg.Server.Version)
}

func TestLoad_DotEnv(t *testing.T) {
	isolateEnv(t)
	envPath := writeFile(t, "test.env", "PI_DOTENV_ONLY=from-file\nVERSION=from-file\n")
	t.Setenv("ENV_FILE", envPath)
	t.Setenv("VERSION", "from-process")
	t.Cleanup(func() { _ = os.Unsetenv("PI_DOTENV_ONLY") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-process", cfg.Server.Version)
	assert.Equal(t, "from-file", os.Getenv("PI_DOTENV_ONLY"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		wantErr string
	}{
		{
			name:    "missing config file",
			env:     map[string]string{"CONFIG_FILE": "/nonexistent/page-insight.yaml"},
			wantErr: "failed to read config file",
		},
		{
			name:    "malformed yaml",
			file:    "server: [unclosed",
			wantErr: "failed to parse config file",
		},
		{
			name:    "strict fetch env",
			env:     map[string]string{"PAGE_FETCH_TIMEOUT": "soon"},
			wantErr: "PAGE_FETCH_TIMEOUT",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"PORT": "70000"},
			wantErr: "server:",
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"LOG_FORMAT": "xml"},
			wantErr: "log:",
		},
		{
			name:    "zero burst",
			file:    "rate_limit:\n  burst: 0\n",
			wantErr: "rate limit: burst",
		},
		{
			name:    "negative cors max age",
			env:     map[string]string{"CORS_MAX_AGE": "-1"},
			wantErr: "cors:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			if tt.file != "" {
				t.Setenv("CONFIG_FILE", writeFile(t, "config.yaml", tt.file))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRateLimitConfig_DisabledSkipsValidation(t *testing.T) {
	assert.NoError(t, RateLimitConfig{Enabled: false}.Validate())
	assert.Error(t, RateLimitConfig{Enabled: true, RPS: 0, Burst: 1}.Validate())
}

func TestLogConfig_Options(t *testing.T) {
	opts := LogConfig{Level: "error", Format: "text"}.Options()
	assert.Equal(t, "text", opts.Format)
	assert.Equal(t, "ERROR", opts.Level.String())
	assert.Equal(t, os.Stdout, opts.Output)
}
