// Package http provides the HTTP layer of the page analysis service: health
// and readiness endpoints, Prometheus metrics and the shared middleware
// (logging, panic recovery, body limits, timeouts). API handlers live in the
// analyze and compress subpackages.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"
)

// Health check status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerStatus is the read-only view of a circuit breaker.
type BreakerStatus interface {
	Name() string
	State() gobreaker.State
	Counts() gobreaker.Counts
}

// RateLimiterStatus reports how many clients the rate limiter tracks.
type RateLimiterStatus interface {
	ActiveKeys() int
}

// HealthHandler reports the state of the page fetcher's circuit breaker and
// the rate limiter. An open breaker makes the service "degraded" rather than
// unhealthy: compression still works and the breaker recovers on its own.
type HealthHandler struct {
	Version     string
	Breaker     BreakerStatus
	RateLimiter RateLimiterStatus
}

// ServeHTTP writes the health report. The status code is 200 unless a
// check is unhealthy, in which case it is 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)

	if h.Breaker != nil {
		checks["page_fetch"] = checkBreaker(h.Breaker)
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_keys": h.RateLimiter.ActiveKeys()},
		}
	}

	status := StatusHealthy
	statusCode := http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case StatusUnhealthy:
			status = StatusUnhealthy
			statusCode = http.StatusServiceUnavailable
		case StatusDegraded:
			if status == StatusHealthy {
				status = StatusDegraded
			}
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.ErrorContext(r.Context(), "health: failed to encode response", slog.Any("error", err))
	}
}

// checkBreaker maps closed to healthy and half-open or open to degraded.
func checkBreaker(b BreakerStatus) CheckStatus {
	state := b.State()
	counts := b.Counts()
	details := map[string]any{
		"name":                 b.Name(),
		"state":                state.String(),
		"requests":             counts.Requests,
		"total_failures":       counts.TotalFailures,
		"consecutive_failures": counts.ConsecutiveFailures,
	}

	switch state {
	case gobreaker.StateOpen:
		return CheckStatus{Status: StatusDegraded, Message: "circuit open, page fetches are rejected", Details: details}
	case gobreaker.StateHalfOpen:
		return CheckStatus{Status: StatusDegraded, Message: "circuit half-open, probing", Details: details}
	default:
		return CheckStatus{Status: StatusHealthy, Details: details}
	}
}

// ReadyHandler handles readiness probe requests. It reports not ready once
// the server starts draining for shutdown.
type ReadyHandler struct {
	Draining *atomic.Bool
}

// ServeHTTP returns 200 "ready", or 503 while draining.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Draining != nil && h.Draining.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.ErrorContext(r.Context(), "ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 "alive" while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.ErrorContext(r.Context(), "alive: failed to write response", slog.Any("error", err))
	}
}
