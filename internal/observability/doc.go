// Package observability groups the logging, metrics and tracing of the
// page-insight API.
//
// logging builds slog loggers, metrics registers the Prometheus counters for
// page analysis, compression, the fetch breaker and rate limiting, and
// tracing installs the OpenTelemetry provider and HTTP server spans.
package observability
