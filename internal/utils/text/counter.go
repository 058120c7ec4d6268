// Package text provides small string helpers shared by the fetcher, the
// analysis pipeline and the compression endpoint.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Lengths reported to clients (characterCount, originalLength,
// compressedLength) are rune counts, never byte counts.
//
// Examples:
//
//	CountRunes("hello")      // returns 5
//	CountRunes("héllo")      // returns 5
//	CountRunes("hello世界")   // returns 7
//	CountRunes("")           // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}
