package textanalysis

import (
	"regexp"
	"unicode/utf8"
)

// wordPattern matches one word token: a maximal run of letters, combining marks,
// digits and underscores. Everything else (whitespace, punctuation, apostrophes,
// symbols) is a delimiter, so "don't" yields "don" and "t".
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// Tokenize splits text into word tokens in document order.
// Case is preserved; callers lower-case where the algorithm requires it.
// Empty input yields an empty (nil) slice.
//
// Examples:
//
//	Tokenize("Hello, world!")   // ["Hello", "world"]
//	Tokenize("snake_case 42")   // ["snake_case", "42"]
//	Tokenize("")                // nil
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return wordPattern.FindAllString(text, -1)
}

// tokenLength returns the length of a token in characters (runes), not bytes.
func tokenLength(token string) int {
	return utf8.RuneCountInString(token)
}
