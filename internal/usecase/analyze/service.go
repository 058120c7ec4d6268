package analyze

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"page-insight/internal/domain/entity"
	"page-insight/internal/observability/metrics"
	"page-insight/internal/observability/tracing"
	"page-insight/internal/textanalysis"
	"page-insight/internal/utils/text"
)

// DefaultParallelism bounds concurrent fetches in AnalyzeBatch when the
// service is built with a non-positive parallelism.
const DefaultParallelism = 4

// Service runs the page-analysis pipeline.
type Service struct {
	Fetcher     PageFetcher
	parallelism int
}

// NewService creates a Service. parallelism bounds concurrent page fetches
// in AnalyzeBatch; values below 1 select DefaultParallelism.
func NewService(fetcher PageFetcher, parallelism int) *Service {
	if parallelism < 1 {
		parallelism = DefaultParallelism
	}
	return &Service{Fetcher: fetcher, parallelism: parallelism}
}

// Analyze fetches rawURL and builds its report.
//
// An empty rawURL returns an *entity.ValidationError. An unknown mode is
// reported the same way. Every other failure wraps ErrFetchFailed together
// with the underlying fetch error.
func (s *Service) Analyze(ctx context.Context, rawURL string, mode entity.AnalysisMode) (*entity.PageReport, error) {
	if err := entity.ValidateURLPresent(rawURL); err != nil {
		metrics.RecordPageAnalyzed(metrics.StatusInvalid)
		return nil, err
	}
	if mode == "" {
		mode = entity.ModeBody
	}
	if _, err := entity.ParseAnalysisMode(string(mode)); err != nil {
		metrics.RecordPageAnalyzed(metrics.StatusInvalid)
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "analyze.page",
		attribute.String("page.mode", string(mode)))
	defer span.End()

	page, err := s.Fetcher.Fetch(ctx, rawURL, mode)
	if err != nil {
		metrics.RecordPageAnalyzed(metrics.StatusFailure)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	report := BuildReport(page, mode)
	metrics.RecordPageAnalyzed(metrics.StatusSuccess)
	metrics.RecordWordsExtracted(report.Content.WordCount)
	span.SetAttributes(
		attribute.Int("page.word_count", report.Content.WordCount),
		attribute.Int("page.one_grams", len(report.Analysis.OneGrams)),
	)

	slog.DebugContext(ctx, "page analyzed",
		slog.String("mode", string(mode)),
		slog.Int("word_count", report.Content.WordCount),
		slog.Int("character_count", report.Content.CharacterCount))

	return report, nil
}

// BuildReport runs the n-gram analysis over the text selected by mode and
// assembles the response envelope. Meta and headings always describe the
// whole page.
func BuildReport(page *entity.Page, mode entity.AnalysisMode) *entity.PageReport {
	body := page.AnalysisText(mode)
	stats := textanalysis.AnalyzeText(body)

	headings := page.Headings
	if headings.H1 == nil {
		headings.H1 = []string{}
	}
	if headings.H2 == nil {
		headings.H2 = []string{}
	}
	if headings.H3 == nil {
		headings.H3 = []string{}
	}

	return &entity.PageReport{
		Meta: entity.PageMeta{
			Title:       page.Title,
			Description: page.Description,
			URL:         page.URL,
		},
		Headings: headings,
		Content: entity.PageContent{
			WordCount:      stats.WordCount,
			CharacterCount: text.CountRunes(body),
			RawText:        body,
		},
		Analysis: entity.NGramAnalysis{
			OneGrams:   stats.OneGrams,
			TwoGrams:   stats.TwoGrams,
			ThreeGrams: stats.ThreeGrams,
		},
	}
}
