package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the analysis counters.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusInvalid = "invalid"
)

// Page analysis metrics
var (
	// PagesAnalyzedTotal counts analysis requests by outcome
	PagesAnalyzedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_analyses_total",
			Help: "Total number of page analyses by outcome",
		},
		[]string{"status"},
	)

	// PageFetchDuration measures time to fetch and extract a page
	PageFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract a page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
		[]string{"result"},
	)

	// PageFetchSize measures downloaded HTML size in bytes
	PageFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "page_fetch_size_bytes",
			Help: "Downloaded page size in bytes",
			Buckets: []float64{
				1024, 4096, 16384, 65536, 262144,
				1048576, 4194304, 10485760, // up to 10MB
			},
		},
	)

	// PageWordsExtracted measures the unfiltered token count of analyzed text
	PageWordsExtracted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_words_extracted",
			Help:    "Number of words in the analyzed text of a page",
			Buckets: prometheus.ExponentialBuckets(50, 2, 12),
		},
	)
)

// Compression metrics
var (
	// CompressionsTotal counts compressions by requested level
	CompressionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "text_compressions_total",
			Help: "Total number of text compressions by level",
		},
		[]string{"level"},
	)

	// CompressionOutputRatio measures compressed length over original length
	CompressionOutputRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "text_compression_output_ratio",
			Help:    "Compressed character count divided by original character count",
			Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
)

// Resilience metrics
var (
	// CircuitBreakerState exposes breaker state: 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Rate limiting metrics
var (
	// RateLimitDecisionsTotal counts per-IP rate limiter outcomes
	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_decisions_total",
			Help: "Total number of rate limiter decisions by result",
		},
		[]string{"result"},
	)
)
