package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultUserAgent is a desktop browser agent. Many sites answer bot agents
// with an error page or a consent wall instead of the article.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// PageFetchConfig holds the configuration for fetching pages to analyze.
//
// Security settings:
//   - DenyPrivateIPs: blocks URLs that resolve to private addresses (SSRF)
//   - MaxBodySize: caps how much of a response is read
//   - MaxRedirects: bounds redirect chains
//   - Timeout: bounds a single request
type PageFetchConfig struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`

	// Parallelism is the maximum number of pages fetched at once by a batch
	// analysis.
	// Default: 4
	Parallelism int `yaml:"parallelism"`

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// It is enforced while reading, not from Content-Length.
	// Default: 10485760 (10MB)
	MaxBodySize int64 `yaml:"max_body_size"`

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated like the original URL.
	// Default: 5
	MaxRedirects int `yaml:"max_redirects"`

	// DenyPrivateIPs rejects URLs resolving to loopback, private or
	// link-local addresses. Should always be true in production.
	// Default: true
	DenyPrivateIPs bool `yaml:"deny_private_ips"`

	// UserAgent is sent with every request.
	// Default: DefaultUserAgent
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig returns the default configuration for page fetching.
func DefaultConfig() PageFetchConfig {
	return PageFetchConfig{
		Timeout:        15 * time.Second,
		Parallelism:    4,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks if the configuration values are valid and safe.
//
// Validation rules:
//   - Timeout: > 0
//   - Parallelism: 1-50
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
//   - UserAgent: non-empty
func (c *PageFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	if c.Parallelism < 1 || c.Parallelism > 50 {
		return fmt.Errorf("parallelism must be between 1 and 50, got %d", c.Parallelism)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables on top of
// DefaultConfig. Unlike the lenient helpers in pkg/config, a value that is set
// but unparsable is an error.
//
// Environment variables:
//   - PAGE_FETCH_TIMEOUT: duration string, e.g. "15s"
//   - PAGE_FETCH_PARALLELISM: integer
//   - PAGE_FETCH_MAX_BODY_SIZE: integer in bytes
//   - PAGE_FETCH_MAX_REDIRECTS: integer
//   - PAGE_FETCH_DENY_PRIVATE_IPS: "true" or "false"
//   - PAGE_FETCH_USER_AGENT: string
func LoadConfigFromEnv() (PageFetchConfig, error) {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overrides fields of cfg with the PAGE_FETCH_* variables that are
// set and validates the result.
func ApplyEnv(cfg PageFetchConfig) (PageFetchConfig, error) {
	if val := os.Getenv("PAGE_FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid PAGE_FETCH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("PAGE_FETCH_PARALLELISM"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid PAGE_FETCH_PARALLELISM: %v", err)
		}
		cfg.Parallelism = parsed
	}

	if val := os.Getenv("PAGE_FETCH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid PAGE_FETCH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("PAGE_FETCH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid PAGE_FETCH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("PAGE_FETCH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if val := os.Getenv("PAGE_FETCH_USER_AGENT"); val != "" {
		cfg.UserAgent = val
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
