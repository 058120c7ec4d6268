// Package config assembles the application configuration.
//
// Sources are applied in order, each overriding the previous one:
//
//  1. built-in defaults
//  2. an optional YAML file named by CONFIG_FILE
//  3. environment variables (a .env file in the working directory is loaded
//     first; variables already set in the process win over it)
//
// The result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"page-insight/internal/infra/fetcher"
	"page-insight/internal/observability/logging"
	envconfig "page-insight/pkg/config"
)

// DefaultServiceName is used for tracing and as the default log source.
const DefaultServiceName = "page-insight"

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port              string        `yaml:"port"`
	Version           string        `yaml:"version"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
}

// Addr returns the listen address for Port.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Options converts the configuration into logger options writing to stdout.
func (l LogConfig) Options() logging.Options {
	return logging.Options{
		Level:  logging.ParseLevel(l.Level),
		Format: l.Format,
		Output: os.Stdout,
	}
}

// RateLimitConfig configures the per-client-IP token bucket.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means RemoteAddr is used.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// TracingConfig configures the OpenTelemetry tracer provider.
type TracingConfig struct {
	ServiceName string `yaml:"service_name"`
}

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig            `yaml:"server"`
	Log       LogConfig               `yaml:"log"`
	Fetch     fetcher.PageFetchConfig `yaml:"fetch"`
	RateLimit RateLimitConfig         `yaml:"rate_limit"`
	CORS      CORSConfig              `yaml:"cors"`
	Tracing   TracingConfig           `yaml:"tracing"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "3000",
			Version:           "dev",
			RequestTimeout:    60 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			MaxBodyBytes:      1 << 20, // 1 MiB
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatJSON,
		},
		Fetch: fetcher.DefaultConfig(),
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   10,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			MaxAge:         86400,
		},
		Tracing: TracingConfig{
			ServiceName: DefaultServiceName,
		},
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the
// environment.
func Load() (*Config, error) {
	if err := loadDotEnv(envconfig.GetEnvString("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := Default()
	if path := envconfig.GetEnvString("CONFIG_FILE", ""); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("loaded env file", slog.String("path", path))
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

// overlayFile decodes the YAML file at path on top of c. Keys absent from
// the file keep their current values.
func (c *Config) overlayFile(path string) error {
	// #nosec G304 -- path comes from the operator's CONFIG_FILE
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = envconfig.GetEnvString("PORT", c.Server.Port)
	c.Server.Version = envconfig.GetEnvString("VERSION", c.Server.Version)
	c.Server.RequestTimeout = envconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.ReadHeaderTimeout = envconfig.GetEnvDuration("HTTP_READ_HEADER_TIMEOUT", c.Server.ReadHeaderTimeout)
	c.Server.ShutdownTimeout = envconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.MaxBodyBytes = envconfig.GetEnvInt64("HTTP_MAX_BODY_BYTES", c.Server.MaxBodyBytes)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = strings.ToLower(envconfig.GetEnvString("LOG_FORMAT", c.Log.Format))

	fetch, err := fetcher.ApplyEnv(c.Fetch)
	if err != nil {
		return fmt.Errorf("page fetch config: %w", err)
	}
	c.Fetch = fetch

	c.RateLimit.Enabled = envconfig.GetEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RPS = envconfig.GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = envconfig.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.TrustedProxies = envconfig.GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", c.RateLimit.TrustedProxies)

	c.CORS.AllowedOrigins = envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowedMethods = envconfig.GetEnvStringList("CORS_ALLOWED_METHODS", c.CORS.AllowedMethods)
	c.CORS.AllowedHeaders = envconfig.GetEnvStringList("CORS_ALLOWED_HEADERS", c.CORS.AllowedHeaders)
	c.CORS.MaxAge = envconfig.GetEnvInt("CORS_MAX_AGE", c.CORS.MaxAge)

	c.Tracing.ServiceName = envconfig.GetEnvString("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	return nil
}

// Validate checks every section and reports the first problem found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Fetch.Validate(); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("cors: max age must be non-negative, got %d", c.CORS.MaxAge)
	}
	if strings.TrimSpace(c.Tracing.ServiceName) == "" {
		return errors.New("tracing: service name must not be empty")
	}
	return nil
}

// Validate checks the server settings.
func (s ServerConfig) Validate() error {
	if err := envconfig.ValidatePort(s.Port); err != nil {
		return err
	}
	if err := envconfig.ValidateNonNegativeDuration(s.RequestTimeout); err != nil {
		return fmt.Errorf("request timeout: %w", err)
	}
	if err := envconfig.ValidatePositiveDuration(s.ReadHeaderTimeout); err != nil {
		return fmt.Errorf("read header timeout: %w", err)
	}
	if err := envconfig.ValidateDurationRange(s.ShutdownTimeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("shutdown timeout: %w", err)
	}
	if err := envconfig.ValidatePositive(s.MaxBodyBytes); err != nil {
		return fmt.Errorf("max body bytes: %w", err)
	}
	return nil
}

// Validate checks the logging settings.
func (l LogConfig) Validate() error {
	switch l.Format {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("unsupported format %q (want %q or %q)", l.Format, logging.FormatJSON, logging.FormatText)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("unsupported level %q", l.Level)
	}
}

// Validate checks the limiter settings. A disabled limiter is always valid.
func (r RateLimitConfig) Validate() error {
	if !r.Enabled {
		return nil
	}
	if err := envconfig.ValidatePositive(r.RPS); err != nil {
		return fmt.Errorf("rps: %w", err)
	}
	if err := envconfig.ValidatePositive(r.Burst); err != nil {
		return fmt.Errorf("burst: %w", err)
	}
	return nil
}
