package fetcher

import (
	"fmt"
	"io"
	"net/url"

	"github.com/go-shiori/go-readability"

	"page-insight/internal/usecase/analyze"
	"page-insight/internal/utils/text"
)

// ExtractArticle runs the readability algorithm over HTML and returns the
// whitespace-normalized text of the main article. pageURL, when non-nil,
// is used to resolve relative links. A page without readable content is
// an analyze.ErrExtractionFailed error.
func ExtractArticle(r io.Reader, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analyze.ErrExtractionFailed, err)
	}

	content := text.CleanWhitespace(article.TextContent)
	if content == "" {
		return "", fmt.Errorf("%w: no readable content found", analyze.ErrExtractionFailed)
	}
	return content, nil
}
