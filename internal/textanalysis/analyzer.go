package textanalysis

// TextStats is the n-gram analysis of a page's visible text.
type TextStats struct {
	// WordCount is the number of tokens before stopword filtering.
	WordCount  int
	OneGrams   []NGram
	TwoGrams   []NGram
	ThreeGrams []NGram
}

// AnalyzeText tokenizes text, applies FilterTokens, and ranks the top 1-, 2-
// and 3-grams of the filtered sequence. Grams are built over the filtered
// sequence, so a 2-gram may join words that were separated by stopwords.
func AnalyzeText(text string) TextStats {
	tokens := Tokenize(text)
	filtered := FilterTokens(tokens)

	return TextStats{
		WordCount:  len(tokens),
		OneGrams:   RankNGrams(filtered, 1),
		TwoGrams:   RankNGrams(filtered, 2),
		ThreeGrams: RankNGrams(filtered, 3),
	}
}
