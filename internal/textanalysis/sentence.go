package textanalysis

import "regexp"

// sentencePattern matches a sentence: a maximal run of non-terminator characters
// followed by one or more terminators. Abbreviations, decimals and quoted
// punctuation are not special-cased; "3.14" splits after "3.".
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Sentence is one segmented unit of a summarization input.
// Index is its 0-based position in segmentation order and never changes while
// sentences are scored and re-sorted.
type Sentence struct {
	Text  string
	Index int
	Score float64
}

// SplitSentences splits text at runs of '.', '!' and '?'.
// Sentences keep their surrounding whitespace; callers trim when rendering.
// Trailing text after the last terminator is not part of any sentence.
// When no terminator occurs anywhere, the whole text is returned as the only
// element. Empty input returns a single empty element.
func SplitSentences(text string) []string {
	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}
