// Package compress implements text compression: map a level to a ratio, run
// the extractive summarizer and report lengths before and after.
package compress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"page-insight/internal/domain/entity"
	"page-insight/internal/observability/metrics"
	"page-insight/internal/observability/tracing"
	"page-insight/internal/utils/text"
)

// ErrCompressionFailed indicates the summarizer could not produce a result.
var ErrCompressionFailed = errors.New("compression failed")

// Summarizer produces an extractive summary keeping roughly ratio of the
// sentences of text.
type Summarizer interface {
	Summarize(text string, ratio float64) string
}

// Service compresses text with a Summarizer.
type Service struct {
	Summarizer Summarizer
}

// NewService creates a compression Service.
func NewService(s Summarizer) *Service {
	return &Service{Summarizer: s}
}

// Compress summarizes input at level. Empty input returns an
// *entity.ValidationError. Levels outside 1..5 keep every sentence.
// A panic inside the summarizer is reported as ErrCompressionFailed.
func (s *Service) Compress(ctx context.Context, input string, level entity.CompressionLevel) (result *entity.CompressionResult, err error) {
	if err := entity.ValidateText(input); err != nil {
		return nil, err
	}

	ratio := level.Ratio()
	_, span := tracing.StartSpan(ctx, "compress.text",
		attribute.Int("compress.level", int(level)),
		attribute.Float64("compress.ratio", ratio))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrCompressionFailed, r)
			tracing.RecordError(span, err)
			slog.ErrorContext(ctx, "summarizer panicked", slog.Any("panic", r))
		}
	}()

	out := s.Summarizer.Summarize(input, ratio)

	result = &entity.CompressionResult{
		OriginalLength:   text.CountRunes(input),
		CompressedLength: text.CountRunes(out),
		Ratio:            ratio,
		Text:             out,
	}
	metrics.RecordCompression(int(level), result.OriginalLength, result.CompressedLength)
	span.SetAttributes(
		attribute.Int("compress.original_length", result.OriginalLength),
		attribute.Int("compress.compressed_length", result.CompressedLength),
	)
	return result, nil
}
