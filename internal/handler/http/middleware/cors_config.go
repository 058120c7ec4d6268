package middleware

import (
	"fmt"
	"net/url"
	"strings"
)

// Defaults applied by NewCORSConfig when a list is empty.
var (
	DefaultCORSOrigins = []string{"*"}
	DefaultCORSMethods = []string{"POST", "OPTIONS"}
	DefaultCORSHeaders = []string{"Content-Type", "X-Request-ID"}
	DefaultCORSExposed = []string{"X-Request-ID", "X-Trace-Id"}
)

// DefaultCORSMaxAge is the preflight cache duration in seconds (24 hours).
const DefaultCORSMaxAge = 86400

var validCORSMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"OPTIONS": true,
}

// NewCORSConfig validates the policy and builds a CORSConfig.
//
// Origins are "*" or absolute http(s) origins without path, query, fragment
// or trailing slash. "*" may not be combined with explicit origins. Methods
// are upper-cased and must be standard verbs. Empty lists fall back to the
// defaults; a negative maxAge is an error.
func NewCORSConfig(origins, methods, headers []string, maxAge int) (*CORSConfig, error) {
	origins = trimList(origins)
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}

	validator, err := newOriginValidator(origins)
	if err != nil {
		return nil, err
	}

	methods = trimList(methods)
	if len(methods) == 0 {
		methods = DefaultCORSMethods
	}
	normalized := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(m)
		if !validCORSMethods[m] {
			return nil, fmt.Errorf("invalid HTTP method '%s': must be one of GET, POST, PUT, DELETE, PATCH, OPTIONS", m)
		}
		normalized = append(normalized, m)
	}

	headers = trimList(headers)
	if len(headers) == 0 {
		headers = DefaultCORSHeaders
	}

	if maxAge < 0 {
		return nil, fmt.Errorf("CORS max age must be non-negative, got: %d", maxAge)
	}

	return &CORSConfig{
		AllowedMethods: normalized,
		AllowedHeaders: headers,
		ExposedHeaders: DefaultCORSExposed,
		MaxAge:         maxAge,
		Validator:      validator,
	}, nil
}

func newOriginValidator(origins []string) (OriginValidator, error) {
	for _, o := range origins {
		if o == "*" {
			if len(origins) > 1 {
				return nil, fmt.Errorf("origin '*' cannot be combined with explicit origins")
			}
			return WildcardValidator{}, nil
		}
	}

	for _, o := range origins {
		if err := validateOrigin(o); err != nil {
			return nil, err
		}
	}
	return NewWhitelistValidator(origins), nil
}

// validateOrigin checks that s is a bare scheme://host[:port] origin.
func validateOrigin(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid origin URL '%s': %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", s)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", s)
	}
	if strings.HasSuffix(s, "/") {
		return fmt.Errorf("origin must not have trailing slash: %s", s)
	}
	if u.Path != "" {
		return fmt.Errorf("origin must not include path: %s", s)
	}
	if u.RawQuery != "" || u.ForceQuery {
		return fmt.Errorf("origin must not include query string: %s", s)
	}
	if u.Fragment != "" {
		return fmt.Errorf("origin must not include fragment: %s", s)
	}
	return nil
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
