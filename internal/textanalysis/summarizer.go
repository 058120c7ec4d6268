package textanalysis

import (
	"math"
	"sort"
	"strings"
)

// minFrequencyWordLength is the shortest word (in characters) counted in the
// summarizer's frequency table. Words of length <= 2 are ignored.
const minFrequencyWordLength = 3

// WordFrequencies tokenizes the lower-cased text and counts every token longer
// than two characters. The table covers the entire text, not a single sentence.
func WordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, tok := range Tokenize(strings.ToLower(text)) {
		if tokenLength(tok) >= minFrequencyWordLength {
			freq[tok]++
		}
	}
	return freq
}

// ScoreSentence returns the arithmetic mean of the global frequencies of the
// sentence's tokens. Tokens missing from freq contribute 0 but still count in
// the denominator. A sentence without tokens scores 0.
func ScoreSentence(sentence string, freq map[string]int) float64 {
	tokens := Tokenize(strings.ToLower(sentence))
	if len(tokens) == 0 {
		return 0
	}
	sum := 0
	for _, tok := range tokens {
		sum += freq[tok]
	}
	return float64(sum) / float64(len(tokens))
}

// ScoreSentences scores every sentence against freq and returns them in their
// original order with Index set and Text trimmed.
func ScoreSentences(sentences []string, freq map[string]int) []Sentence {
	scored := make([]Sentence, len(sentences))
	for i, s := range sentences {
		scored[i] = Sentence{
			Text:  strings.TrimSpace(s),
			Index: i,
			Score: ScoreSentence(s, freq),
		}
	}
	return scored
}

// SelectionCount returns how many of total sentences survive compression at
// ratio: max(1, ceil(total*ratio)), never more than total. A NaN or
// non-positive ratio keeps a single sentence.
func SelectionCount(total int, ratio float64) int {
	if total <= 0 {
		return 0
	}
	if math.IsNaN(ratio) || ratio <= 0 {
		return 1
	}
	want := math.Ceil(float64(total) * ratio)
	if want >= float64(total) {
		return total
	}
	count := int(want)
	if count < 1 {
		count = 1
	}
	return count
}

// Summarize produces a frequency-weighted extractive summary of text that
// keeps SelectionCount(sentences, ratio) sentences in document order, joined
// by single spaces.
//
// Degenerate inputs return early: empty text returns "", and text that
// segments into at most one sentence is returned unchanged.
//
// Steps:
//  1. Segment text with SplitSentences.
//  2. Build the word-frequency table over the whole text.
//  3. Score each sentence by mean token frequency.
//  4. Stable-sort by score descending; equal scores keep document order.
//  5. Keep the top SelectionCount sentences.
//  6. Restore document order by Index.
//  7. Join the trimmed sentences with a single space.
func Summarize(text string, ratio float64) string {
	if text == "" {
		return ""
	}

	sentences := SplitSentences(text)
	if len(sentences) <= 1 {
		return text
	}

	scored := ScoreSentences(sentences, WordFrequencies(text))
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	selected := scored[:SelectionCount(len(scored), ratio)]
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Index < selected[j].Index
	})

	parts := make([]string, len(selected))
	for i, s := range selected {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// FrequencySummarizer is the Summarize algorithm behind a value type, for
// callers that depend on a summarizer interface.
type FrequencySummarizer struct{}

// Summarize calls the package-level Summarize.
func (FrequencySummarizer) Summarize(text string, ratio float64) string {
	return Summarize(text, ratio)
}
