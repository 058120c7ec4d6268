package analyze

import (
	"context"

	"page-insight/internal/domain/entity"
)

// PageFetcher downloads a page and extracts its metadata and text.
//
// Implementations MUST:
//   - reject non-http(s) URLs and, when configured, private addresses
//   - bound the response size, the redirect chain and the request duration
//   - populate Page.ArticleText only when mode is entity.ModeArticle
//
// Errors wrap the sentinels of this package (ErrInvalidURL, ErrPrivateIP,
// ErrTooManyRedirects, ErrBodyTooLarge, ErrTimeout, ErrUpstreamStatus,
// ErrExtractionFailed) or gobreaker.ErrOpenState.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, mode entity.AnalysisMode) (*entity.Page, error)
}
