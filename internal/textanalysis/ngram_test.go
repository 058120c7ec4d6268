package textanalysis_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-insight/internal/textanalysis"
)

func TestRankNGrams_TieBreakByFirstSeen(t *testing.T) {
	tokens := []string{"the", "quick", "fox", "the", "quick", "cat"}

	got := textanalysis.RankNGrams(tokens, 2)

	want := []textanalysis.NGram{
		{Text: "the quick", Count: 2},
		{Text: "quick fox", Count: 1},
		{Text: "fox the", Count: 1},
		{Text: "quick cat", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RankNGrams() mismatch (-want +got):\n%s", diff)
	}
}

func TestRankNGrams(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		n      int
		want   []textanalysis.NGram
	}{
		{
			name:   "unigrams are lower-cased and merged",
			tokens: []string{"Go", "go", "GO", "rust"},
			n:      1,
			want:   []textanalysis.NGram{{Text: "go", Count: 3}, {Text: "rust", Count: 1}},
		},
		{
			name:   "single character grams skipped",
			tokens: []string{"a", "b", "ab", "a"},
			n:      1,
			want:   []textanalysis.NGram{{Text: "ab", Count: 1}},
		},
		{
			name:   "joined single characters are long enough",
			tokens: []string{"a", "b"},
			n:      2,
			want:   []textanalysis.NGram{{Text: "a b", Count: 1}},
		},
		{
			name:   "trigrams",
			tokens: []string{"new", "york", "city", "new", "york", "city"},
			n:      3,
			want: []textanalysis.NGram{
				{Text: "new york city", Count: 2},
				{Text: "york city new", Count: 1},
				{Text: "city new york", Count: 1},
			},
		},
		{
			name:   "sequence exactly n long",
			tokens: []string{"alpha", "beta", "gamma"},
			n:      3,
			want:   []textanalysis.NGram{{Text: "alpha beta gamma", Count: 1}},
		},
		{
			name:   "higher count later in sequence ranks first",
			tokens: []string{"one", "two", "two", "three", "three", "three"},
			n:      1,
			want: []textanalysis.NGram{
				{Text: "three", Count: 3},
				{Text: "two", Count: 2},
				{Text: "one", Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textanalysis.RankNGrams(tt.tokens, tt.n)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RankNGrams(%v, %d) mismatch (-want +got):\n%s", tt.tokens, tt.n, diff)
			}
		})
	}
}

func TestRankNGrams_EmptyResults(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		n      int
	}{
		{name: "n greater than token count", tokens: []string{"alpha", "beta"}, n: 3},
		{name: "no tokens", tokens: nil, n: 1},
		{name: "n is zero", tokens: []string{"alpha"}, n: 0},
		{name: "n is negative", tokens: []string{"alpha"}, n: -1},
		{name: "only single characters", tokens: []string{"a", "b", "c"}, n: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textanalysis.RankNGrams(tt.tokens, tt.n)
			require.NotNil(t, got, "empty result should be an empty slice, not nil")
			assert.Empty(t, got)
		})
	}
}

func TestRankNGrams_TruncatesToTopK(t *testing.T) {
	tokens := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		tokens = append(tokens, fmt.Sprintf("word%02d", i))
	}
	// word29 appears twice and must lead.
	tokens = append(tokens, "word29")

	got := textanalysis.RankNGrams(tokens, 1)

	require.Len(t, got, textanalysis.DefaultTopK)
	assert.Equal(t, textanalysis.NGram{Text: "word29", Count: 2}, got[0])
	for i := 1; i < len(got); i++ {
		assert.Equal(t, fmt.Sprintf("word%02d", i-1), got[i].Text, "ties keep insertion order")
	}
}

func TestRankNGramsLimit_Unlimited(t *testing.T) {
	tokens := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		tokens = append(tokens, fmt.Sprintf("term%02d", i))
	}

	assert.Len(t, textanalysis.RankNGramsLimit(tokens, 1, 0), 30)
	assert.Len(t, textanalysis.RankNGramsLimit(tokens, 1, 5), 5)
}

func TestRankNGrams_Properties(t *testing.T) {
	text := "Search engines rank pages. Pages with useful content rank higher. " +
		"Useful content attracts links, and links help search engines find pages. " +
		"Content quality matters more than keyword stuffing in content."
	tokens := textanalysis.FilterTokens(textanalysis.Tokenize(text))

	for n := 1; n <= 3; n++ {
		got := textanalysis.RankNGrams(tokens, n)
		require.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), textanalysis.DefaultTopK)

		seen := make(map[string]bool, len(got))
		for i, g := range got {
			assert.False(t, seen[g.Text], "duplicate gram %q", g.Text)
			seen[g.Text] = true
			assert.GreaterOrEqual(t, g.Count, 1)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Count, g.Count, "counts must be non-increasing")
			}
		}
	}
}

func TestNGram_JSON(t *testing.T) {
	grams := []textanalysis.NGram{{Text: "page speed", Count: 4}, {Text: "seo", Count: 2}}

	data, err := json.Marshal(grams)
	require.NoError(t, err)
	assert.JSONEq(t, `[["page speed",4],["seo",2]]`, string(data))

	var decoded []textanalysis.NGram
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, grams, decoded)
}

func TestNGram_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []string{`["only-text"]`, `{"text":"x","count":1}`, `[1, "x"]`, `["x", "one"]`}
	for _, input := range tests {
		var g textanalysis.NGram
		assert.Error(t, json.Unmarshal([]byte(input), &g), "input %s", input)
	}
}
