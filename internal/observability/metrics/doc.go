// Package metrics provides the Prometheus business metrics of page-insight.
//
// HTTP request metrics live with the HTTP middleware; this package covers
// what the service does with a request:
//   - pages analyzed, by outcome
//   - page fetch latency and size, words extracted per page
//   - compressions by level and the achieved output ratio
//   - circuit breaker state of the page fetcher
//
// All collectors are registered with the Prometheus default registry through
// promauto and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	page, err := fetcher.Fetch(ctx, url, mode)
//	metrics.RecordPageFetch(time.Since(start), bodyBytes, err == nil)
package metrics
