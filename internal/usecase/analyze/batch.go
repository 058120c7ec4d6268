package analyze

import (
	"context"

	"golang.org/x/sync/errgroup"

	"page-insight/internal/domain/entity"
)

// BatchResult is the outcome of one URL of AnalyzeBatch. Exactly one of
// Report and Err is set.
type BatchResult struct {
	URL    string
	Report *entity.PageReport
	Err    error
}

// AnalyzeBatch analyzes every URL with at most the service's parallelism in
// flight. A failing URL does not stop the others; results keep input order.
// Only cancellation of ctx ends the batch early, in which case the remaining
// URLs report the context error.
func (s *Service) AnalyzeBatch(ctx context.Context, urls []string, mode entity.AnalysisMode) []BatchResult {
	results := make([]BatchResult, len(urls))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.parallelism)

	for i, u := range urls {
		results[i].URL = u
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			report, err := s.Analyze(egCtx, u, mode)
			results[i].Report = report
			results[i].Err = err
			return nil
		})
	}

	// goroutines never return errors; failures live in results
	_ = eg.Wait()
	return results
}
