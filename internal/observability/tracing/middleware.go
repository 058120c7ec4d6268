package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"page-insight/internal/handler/http/pathutil"
	"page-insight/internal/handler/http/requestid"
	"page-insight/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-Id"

// Span attribute keys set by Middleware.
const (
	AttrMethod    = attribute.Key("http.request.method")
	AttrRoute     = attribute.Key("http.route")
	AttrPath      = attribute.Key("url.path")
	AttrStatus    = attribute.Key("http.response.status_code")
	AttrRequestID = attribute.Key("request.id")
)

// Middleware starts a server span for every request.
//
// The span continues a W3C trace context found in the request headers and is
// named "METHOD route", where route is the normalized path, so unknown paths
// share the name "METHOD /other". The trace ID is returned in X-Trace-Id.
// Responses with a 5xx status mark the span as failed; 4xx responses do not.
//
// Request IDs are attached when the requestid middleware runs first.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		attrs := []attribute.KeyValue{
			AttrMethod.String(r.Method),
			AttrRoute.String(route),
			AttrPath.String(r.URL.Path),
		}
		if id := requestid.FromContext(ctx); id != "" {
			attrs = append(attrs, AttrRequestID.String(id))
		}

		ctx, span := GetTracer().Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.HasTraceID() {
			w.Header().Set(TraceIDHeader, sc.TraceID().String())
		}

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		status := rw.StatusCode()
		span.SetAttributes(AttrStatus.Int(status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}
