package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig retries quickly and without jitter.
func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     20 * time.Millisecond,
		Multiplier:   2.0,
	}
}

var errUnavailable = &HTTPError{StatusCode: 503, Message: "Service Unavailable"}

func TestWithBackoff_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func(int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func(int) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("fetch: %w", errUnavailable)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoff_ExhaustsAttempts(t *testing.T) {
	var seen []int
	err := WithBackoff(context.Background(), fastConfig(3), func(attempt int) error {
		seen = append(seen, attempt)
		return errUnavailable
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retry attempts (3) exceeded")
	assert.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestWithBackoff_NonRetryableReturnedUnwrapped(t *testing.T) {
	notFound := &HTTPError{StatusCode: 404, Message: "Not Found"}
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(5), func(int) error {
		calls++
		return notFound
	})

	assert.Same(t, notFound, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_ContextCanceledDuringWait(t *testing.T) {
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithBackoff(ctx, cfg, func(int) error {
		calls++
		cancel()
		return errUnavailable
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "retry aborted")
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_HonorsRetryAfter(t *testing.T) {
	cfg := fastConfig(2)
	cfg.MaxDelay = 200 * time.Millisecond

	start := time.Now()
	calls := 0
	err := WithBackoff(context.Background(), cfg, func(int) error {
		calls++
		if calls == 1 {
			return &HTTPError{StatusCode: 429, Message: "Too Many Requests", RetryAfter: 50 * time.Millisecond}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestWithBackoff_RetryAfterBeyondMaxDelayStops(t *testing.T) {
	calls := 0
	limited := &HTTPError{StatusCode: 429, Message: "Too Many Requests", RetryAfter: time.Minute}
	err := WithBackoff(context.Background(), fastConfig(3), func(int) error {
		calls++
		return limited
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryAfterTooLong)
	assert.ErrorIs(t, err, limited)
	assert.Equal(t, 1, calls)
}

func TestNextDelay(t *testing.T) {
	cfg := Config{MaxDelay: 300 * time.Millisecond, Multiplier: 2}

	assert.Equal(t, 200*time.Millisecond, nextDelay(100*time.Millisecond, cfg))
	assert.Equal(t, 300*time.Millisecond, nextDelay(200*time.Millisecond, cfg), "capped at MaxDelay")
}

func TestConfigs(t *testing.T) {
	page := PageFetchConfig()
	assert.Equal(t, 2, page.MaxAttempts)
	assert.LessOrEqual(t, page.MaxDelay, 2*time.Second, "a client is waiting")
	assert.NoError(t, page.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero attempts", mutate: func(c *Config) { c.MaxAttempts = 0 }},
		{name: "max below initial", mutate: func(c *Config) { c.MaxDelay = c.InitialDelay / 2 }},
		{name: "negative initial", mutate: func(c *Config) { c.InitialDelay = -time.Second }},
		{name: "shrinking multiplier", mutate: func(c *Config) { c.Multiplier = 0.5 }},
		{name: "jitter above one", mutate: func(c *Config) { c.JitterFraction = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := PageFetchConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	seen := make(map[time.Duration]bool)
	for range 20 {
		got := addJitter(base, 0.2)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, 120*time.Millisecond)
		seen[got] = true
	}
	assert.Greater(t, len(seen), 1, "jitter should vary")

	assert.Equal(t, base, addJitter(base, 0))
	assert.LessOrEqual(t, addJitter(base, 5), 2*base, "fraction is clamped to 1")
}

func TestSleep_ReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleep(ctx, time.Hour)
	assert.True(t, errors.Is(err, context.Canceled))
}
