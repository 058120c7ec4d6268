// Package tracing provides OpenTelemetry tracing for page-insight.
//
// InitProvider installs an SDK tracer provider and the W3C trace-context
// propagator; Middleware opens a server span per HTTP request and returns the
// trace ID in X-Trace-Id; StartSpan opens child spans around analysis,
// compression and page fetches.
//
// Example usage:
//
//	import "page-insight/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitProvider("page-insight", version)
//	    defer shutdown(context.Background())
//	}
//
//	func analyze(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "analyze.page")
//	    defer span.End()
//	}
package tracing
