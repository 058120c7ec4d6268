package entity

import "page-insight/internal/textanalysis"

// PageReport is the JSON envelope returned for an analyzed page.
type PageReport struct {
	Meta     PageMeta      `json:"meta"`
	Headings Headings      `json:"headings"`
	Content  PageContent   `json:"content"`
	Analysis NGramAnalysis `json:"analysis"`
}

// PageMeta holds the page's title, meta description and the requested URL.
type PageMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// PageContent describes the analyzed text. WordCount is the number of tokens
// before stopword filtering and CharacterCount is measured in runes.
type PageContent struct {
	WordCount      int    `json:"wordCount"`
	CharacterCount int    `json:"characterCount"`
	RawText        string `json:"rawText"`
}

// NGramAnalysis holds the top-ranked 1-, 2- and 3-grams. Each gram encodes as
// a ["gram", count] pair.
type NGramAnalysis struct {
	OneGrams   []textanalysis.NGram `json:"oneGrams"`
	TwoGrams   []textanalysis.NGram `json:"twoGrams"`
	ThreeGrams []textanalysis.NGram `json:"threeGrams"`
}
