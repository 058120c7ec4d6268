// Package entity defines the request-scoped data of page analysis and text
// compression: the extracted page, the analysis report envelope, compression
// levels and results, along with their validation rules and domain errors.
package entity

import "fmt"

// AnalysisMode selects which text of a page feeds the n-gram analysis.
type AnalysisMode string

const (
	// ModeBody analyzes the whole visible body text (script and style removed).
	ModeBody AnalysisMode = "body"
	// ModeArticle analyzes only the main article text found by readability.
	ModeArticle AnalysisMode = "article"
)

// ParseAnalysisMode converts a request value into an AnalysisMode.
// An empty value selects ModeBody.
func ParseAnalysisMode(s string) (AnalysisMode, error) {
	switch AnalysisMode(s) {
	case "", ModeBody:
		return ModeBody, nil
	case ModeArticle:
		return ModeArticle, nil
	default:
		return "", &ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("mode must be %q or %q", ModeBody, ModeArticle),
		}
	}
}

// Headings holds the text of the page's h1, h2 and h3 elements in document order.
// The slices are never nil so that they encode as [] rather than null.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// NewHeadings returns Headings with empty, non-nil slices.
func NewHeadings() Headings {
	return Headings{H1: []string{}, H2: []string{}, H3: []string{}}
}

// Page is a fetched and extracted web document.
type Page struct {
	// URL is the address the caller asked for, not the post-redirect address.
	URL         string
	Title       string
	Description string
	Headings    Headings
	// BodyText is the whitespace-normalized visible text of <body>.
	BodyText string
	// ArticleText is the readability main-content text. It is only populated
	// when the page was fetched in ModeArticle.
	ArticleText string
}

// AnalysisText returns the text that feeds the n-gram pipeline for mode.
// ModeArticle falls back to BodyText when no article text was extracted.
func (p *Page) AnalysisText(mode AnalysisMode) string {
	if mode == ModeArticle && p.ArticleText != "" {
		return p.ArticleText
	}
	return p.BodyText
}
