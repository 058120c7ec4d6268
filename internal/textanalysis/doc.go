// Package textanalysis implements the text-analysis engine used by the page
// analysis and compression pipelines.
//
// The package is pure: every function is a deterministic computation over its
// arguments with no I/O and no package-level mutable state, so all of it is safe
// for concurrent use across requests without locking.
//
// Components:
//   - Tokenize: word tokenization (runs of letters, marks, digits and '_')
//   - FilterTokens / IsStopword: the page pipeline's stopword and length pre-filter
//   - RankNGrams: top-K frequency ranking of 1-, 2- and 3-grams
//   - SplitSentences: punctuation-based sentence segmentation
//   - Summarize: frequency-weighted extractive summarization at a compression ratio
//
// Example usage:
//
//	stats := textanalysis.AnalyzeText(bodyText)
//	fmt.Println(stats.OneGrams[0].Text, stats.OneGrams[0].Count)
//
//	summary := textanalysis.Summarize(text, textanalysis.RatioForLevel(3))
package textanalysis
