package text

import "strings"

// CleanWhitespace collapses every run of Unicode whitespace (spaces, tabs,
// newlines) into a single ASCII space and trims both ends.
//
//	CleanWhitespace("  Hello\n\n  world\t") // "Hello world"
func CleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
