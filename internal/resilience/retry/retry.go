// Package retry re-runs outbound page fetches with exponential backoff and
// jitter. Only transient failures are retried: network timeouts and attempts
// that hit their own deadline (ErrAttemptTimeout), refused or reset
// connections, HTTP 5xx, 408 and 429. A Retry-After hint from the
// target stretches the next delay, up to Config.MaxDelay.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"page-insight/internal/utils/text"
)

// ErrRetryAfterTooLong is returned when the target asks the client to wait
// longer than the configured maximum delay.
var ErrRetryAfterTooLong = errors.New("retry-after exceeds max delay")

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first one
	MaxAttempts int

	// InitialDelay is the delay before the first retry
	InitialDelay time.Duration

	// MaxDelay caps both the backoff and any Retry-After hint
	MaxDelay time.Duration

	// Multiplier is the growth factor of the delay after each retry
	Multiplier float64

	// JitterFraction is the fraction of delay to add as random jitter (0.0 to 1.0)
	JitterFraction float64
}

// PageFetchConfig returns configuration for fetching a page on behalf of an
// interactive request. Delays stay short because a client is waiting.
func PageFetchConfig() Config {
	return Config{
		MaxAttempts:    2,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// Validate rejects configurations that would never attempt or never back off.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.InitialDelay < 0 || c.MaxDelay < c.InitialDelay {
		return fmt.Errorf("delays must satisfy 0 <= initial (%v) <= max (%v)", c.InitialDelay, c.MaxDelay)
	}
	if c.Multiplier < 1 {
		return fmt.Errorf("multiplier must be >= 1, got %v", c.Multiplier)
	}
	if c.JitterFraction < 0 || c.JitterFraction > 1 {
		return fmt.Errorf("jitter fraction must be in [0, 1], got %v", c.JitterFraction)
	}
	return nil
}

// WithBackoff calls fn until it succeeds, returns a non-retryable error, the
// attempts are exhausted or ctx is done. fn receives the 1-based attempt
// number. Non-retryable errors are returned unwrapped.
func WithBackoff(ctx context.Context, cfg Config, fn func(attempt int) error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			if attempt > 1 {
				slog.InfoContext(ctx, "page fetch succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := delay
		if hint := retryAfter(lastErr); hint > 0 {
			if hint > cfg.MaxDelay {
				return fmt.Errorf("%w (%v > %v): %w", ErrRetryAfterTooLong, hint, cfg.MaxDelay, lastErr)
			}
			wait = max(wait, hint)
		}

		slog.WarnContext(ctx, "page fetch failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", wait),
			slog.String("error", text.MaskError(lastErr)))

		if err := sleep(ctx, wait); err != nil {
			return fmt.Errorf("retry aborted: %w", err)
		}
		delay = nextDelay(delay, cfg)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// nextDelay grows delay by the multiplier, caps it and adds jitter.
func nextDelay(delay time.Duration, cfg Config) time.Duration {
	next := min(time.Duration(float64(delay)*cfg.Multiplier), cfg.MaxDelay)
	return addJitter(next, cfg.JitterFraction)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// addJitter adds up to jitterFraction of duration at random.
func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	jitterFraction = min(jitterFraction, 1.0)
	// #nosec G404 -- backoff jitter does not need cryptographic randomness.
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
