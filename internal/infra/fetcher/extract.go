package fetcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"page-insight/internal/domain/entity"
	"page-insight/internal/usecase/analyze"
	"page-insight/internal/utils/text"
)

// ExtractPage parses HTML and extracts the parts the analysis needs: the
// document title, the meta description, the text of every h1, h2 and h3 in
// document order, and the visible body text with script and style elements
// removed. Heading and body text are whitespace-normalized.
func ExtractPage(r io.Reader, pageURL string) (*entity.Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse HTML: %v", analyze.ErrExtractionFailed, err)
	}

	page := &entity.Page{
		URL:      pageURL,
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Headings: entity.NewHeadings(),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		page.Description = desc
	}

	page.Headings.H1 = headingTexts(doc, "h1")
	page.Headings.H2 = headingTexts(doc, "h2")
	page.Headings.H3 = headingTexts(doc, "h3")

	doc.Find("script, style").Remove()
	page.BodyText = text.CleanWhitespace(doc.Find("body").Text())

	return page, nil
}

func headingTexts(doc *goquery.Document, selector string) []string {
	out := []string{}
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, text.CleanWhitespace(s.Text()))
	})
	return out
}
