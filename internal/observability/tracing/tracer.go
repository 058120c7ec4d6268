package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"page-insight/internal/utils/text"
)

// TracerName is the instrumentation name of every span created here.
const TracerName = "page-insight"

// GetTracer returns the tracer of the currently installed global provider.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(TracerName)
}

// StartSpan starts an internal span with the given attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed with err. A nil err is ignored. URL
// credentials and secret query parameters in the message are masked.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	masked := maskedError{msg: text.MaskError(err), err: err}
	span.RecordError(masked)
	span.SetStatus(codes.Error, masked.msg)
}

// maskedError reports a masked message while keeping err in the chain.
type maskedError struct {
	msg string
	err error
}

func (e maskedError) Error() string { return e.msg }
func (e maskedError) Unwrap() error { return e.err }
