package metrics

import (
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

// RecordPageAnalyzed records the outcome of one analysis request.
// status should be StatusSuccess, StatusFailure or StatusInvalid.
func RecordPageAnalyzed(status string) {
	PagesAnalyzedTotal.WithLabelValues(status).Inc()
}

// RecordPageFetch records the duration of a page fetch and, on success, the
// downloaded size in bytes.
//
// Example:
//
//	start := time.Now()
//	body, err := fetch(ctx, url)
//	RecordPageFetch(time.Since(start), len(body), err == nil)
func RecordPageFetch(duration time.Duration, sizeBytes int, success bool) {
	result := StatusSuccess
	if !success {
		result = StatusFailure
	}
	PageFetchDuration.WithLabelValues(result).Observe(duration.Seconds())
	if success && sizeBytes > 0 {
		PageFetchSize.Observe(float64(sizeBytes))
	}
}

// RecordWordsExtracted records the word count of an analyzed page.
func RecordWordsExtracted(words int) {
	PageWordsExtracted.Observe(float64(words))
}

// RecordCompression records a compression at level and its output ratio.
// The ratio is only observed when the original text is non-empty.
func RecordCompression(level int, originalChars, compressedChars int) {
	CompressionsTotal.WithLabelValues(levelLabel(level)).Inc()
	if originalChars > 0 {
		CompressionOutputRatio.Observe(float64(compressedChars) / float64(originalChars))
	}
}

// levelLabel bounds label cardinality: levels outside 1..5 share "default".
func levelLabel(level int) string {
	if level < 1 || level > 5 {
		return "default"
	}
	return strconv.Itoa(level)
}

// SetCircuitBreakerState exports the state of the named breaker.
func SetCircuitBreakerState(name string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	CircuitBreakerState.WithLabelValues(name).Set(v)
}

// RecordRateLimit records whether a request passed the rate limiter.
func RecordRateLimit(allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	RateLimitDecisionsTotal.WithLabelValues(result).Inc()
}
