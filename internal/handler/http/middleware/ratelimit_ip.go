package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"page-insight/internal/handler/http/respond"
	"page-insight/internal/observability/metrics"
)

// MsgRateLimited is the body message of a 429 response.
const MsgRateLimited = "Too many requests, please try again later"

// IPRateLimiterConfig holds configuration for the per-IP token bucket.
type IPRateLimiterConfig struct {
	// RPS is the sustained request rate per client IP.
	// Default: 5
	RPS float64

	// Burst is the bucket size, i.e. how many requests may arrive at once.
	// Default: 10
	Burst int

	// IdleTTL is how long an idle client's bucket is kept.
	// Default: 10 minutes
	IdleTTL time.Duration

	// Enabled controls whether rate limiting is active.
	// Default: true
	Enabled bool
}

// DefaultIPRateLimiterConfig returns the default configuration for IP-based rate limiting.
func DefaultIPRateLimiterConfig() IPRateLimiterConfig {
	return IPRateLimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
		Enabled: true,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter limits requests per client IP with golang.org/x/time/rate
// token buckets. Buckets of clients idle for longer than IdleTTL are
// dropped by CleanupIdle.
type IPRateLimiter struct {
	config      IPRateLimiterConfig
	ipExtractor IPExtractor
	now         func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewIPRateLimiter creates a new IP-based rate limiter. Non-positive values
// in config fall back to the defaults.
func NewIPRateLimiter(config IPRateLimiterConfig, ipExtractor IPExtractor) *IPRateLimiter {
	defaults := DefaultIPRateLimiterConfig()
	if config.RPS <= 0 {
		config.RPS = defaults.RPS
	}
	if config.Burst <= 0 {
		config.Burst = defaults.Burst
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = defaults.IdleTTL
	}
	if ipExtractor == nil {
		ipExtractor = &RemoteAddrExtractor{}
	}

	return &IPRateLimiter{
		config:      config,
		ipExtractor: ipExtractor,
		now:         time.Now,
		visitors:    make(map[string]*visitor),
	}
}

// Middleware returns an HTTP middleware function that enforces IP-based rate limiting.
//
// Response headers:
//   - X-RateLimit-Limit: bucket size
//   - X-RateLimit-Remaining: whole tokens left after this request
//   - Retry-After: seconds until a token is available (429 only)
//
// A request whose IP cannot be determined is allowed.
func (rl *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip, err := rl.ipExtractor.ExtractIP(r)
			if err != nil {
				slog.ErrorContext(r.Context(), "IP rate limiter: failed to extract IP, allowing request",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, retryAfter := rl.allow(ip)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				metrics.RecordRateLimit(false)
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				slog.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("limiter_type", "ip"),
					slog.String("key", ip),
					slog.Int("retry_after", seconds),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				respond.Message(w, http.StatusTooManyRequests, MsgRateLimited)
				return
			}

			metrics.RecordRateLimit(true)
			next.ServeHTTP(w, r)
		})
	}
}

// allow takes one token from ip's bucket.
func (rl *IPRateLimiter) allow(ip string) (allowed bool, remaining int, retryAfter time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.config.RPS), rl.config.Burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	res := v.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, 0, delay
	}

	tokens := v.limiter.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	return true, int(tokens), 0
}

// CleanupIdle drops buckets not used within IdleTTL and returns how many
// were removed.
func (rl *IPRateLimiter) CleanupIdle() int {
	cutoff := rl.now().Add(-rl.config.IdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// ActiveKeys returns the number of tracked client IPs.
func (rl *IPRateLimiter) ActiveKeys() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// StartCleanup runs CleanupIdle every interval until ctx is done.
// It blocks, so call it in its own goroutine.
func (rl *IPRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter_type", "ip"),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter_type", "ip"))
			return
		case <-ticker.C:
			removed := rl.CleanupIdle()
			slog.Debug("rate limit cleanup completed",
				slog.String("limiter_type", "ip"),
				slog.Int("removed", removed))
		}
	}
}
