package textanalysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-insight/internal/textanalysis"
)

func TestAnalyzeText(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog. The quick brown fox sleeps."

	stats := textanalysis.AnalyzeText(text)

	assert.Equal(t, 14, stats.WordCount, "word count is measured before filtering")

	require.NotEmpty(t, stats.OneGrams)
	assert.Equal(t, []textanalysis.NGram{
		{Text: "quick", Count: 2},
		{Text: "brown", Count: 2},
		{Text: "fox", Count: 2},
		{Text: "jumps", Count: 1},
		{Text: "over", Count: 1},
		{Text: "lazy", Count: 1},
		{Text: "dog", Count: 1},
		{Text: "sleeps", Count: 1},
	}, stats.OneGrams)

	require.NotEmpty(t, stats.TwoGrams)
	assert.Equal(t, textanalysis.NGram{Text: "quick brown", Count: 2}, stats.TwoGrams[0])
	assert.Equal(t, textanalysis.NGram{Text: "brown fox", Count: 2}, stats.TwoGrams[1])
	// stopwords are removed before windowing, so "dog quick" is a 2-gram
	assert.Contains(t, stats.TwoGrams, textanalysis.NGram{Text: "dog quick", Count: 1})

	require.NotEmpty(t, stats.ThreeGrams)
	assert.Equal(t, textanalysis.NGram{Text: "quick brown fox", Count: 2}, stats.ThreeGrams[0])
}

func TestAnalyzeText_Empty(t *testing.T) {
	stats := textanalysis.AnalyzeText("")

	assert.Equal(t, 0, stats.WordCount)
	assert.NotNil(t, stats.OneGrams)
	assert.Empty(t, stats.OneGrams)
	assert.Empty(t, stats.TwoGrams)
	assert.Empty(t, stats.ThreeGrams)
}
