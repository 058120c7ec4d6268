package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
// Build it with NewCORSConfig so origins and methods are validated.
type CORSConfig struct {
	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Default: ["POST", "OPTIONS"]
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string

	// ExposedHeaders lists response headers readable by browser scripts.
	// Default: ["X-Request-ID", "X-Trace-Id"]
	ExposedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	// Default: 86400 (24 hours)
	MaxAge int

	// Validator decides which origins are allowed.
	Validator OriginValidator

	// Logger receives policy violations and preflight debug lines.
	// nil means slog.Default().
	Logger *slog.Logger
}

// OriginValidator decides whether a request Origin is allowed.
type OriginValidator interface {
	IsAllowed(origin string) bool
}

// wildcardOrigin is implemented by validators that allow every origin, in
// which case "*" is sent instead of echoing the request origin.
type wildcardOrigin interface {
	AllowsAll() bool
}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - No Origin header: same-origin request, passed through untouched.
//   - Origin not allowed: logged and passed through without CORS headers, so
//     the browser blocks the response.
//   - Origin allowed: Access-Control-Allow-Origin is set ("*" for the
//     wildcard policy, otherwise the echoed origin plus Vary: Origin).
//   - Preflight (OPTIONS with Access-Control-Request-Method): answered with
//     204 and the method/header/max-age headers; next is not called.
//
// Credentials are never allowed; the API carries no cookies or auth.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	allowMethods := strings.Join(config.AllowedMethods, ", ")
	allowHeaders := strings.Join(config.AllowedHeaders, ", ")
	exposeHeaders := strings.Join(config.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	allowAll := false
	if w, ok := config.Validator.(wildcardOrigin); ok {
		allowAll = w.AllowsAll()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if config.Validator == nil || !config.Validator.IsAllowed(origin) {
				logger.WarnContext(r.Context(), "CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("remote_addr", r.RemoteAddr))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if allowAll {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				h.Set("Access-Control-Max-Age", maxAge)

				logger.DebugContext(r.Context(), "CORS: preflight request",
					slog.String("origin", origin),
					slog.String("requested_method", r.Header.Get("Access-Control-Request-Method")),
					slog.String("requested_headers", r.Header.Get("Access-Control-Request-Headers")))

				w.WriteHeader(http.StatusNoContent)
				return
			}

			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}
			next.ServeHTTP(w, r)
		})
	}
}
