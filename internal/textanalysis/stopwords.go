package textanalysis

import "strings"

// minKeywordLength is the shortest token (in characters) kept by FilterTokens.
// Tokens of length <= 2 are dropped.
const minKeywordLength = 3

// stopwords is the fixed English function-word set used by the page analysis
// pipeline. It is never mutated after package initialization.
var stopwords = func() map[string]struct{} {
	words := []string{
		// articles, conjunctions, prepositions
		"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
		"by", "a", "an", "as", "from",
		// determiners, relatives, negation
		"this", "that", "which", "not",
		// auxiliary and modal verbs
		"is", "are", "was", "were", "be", "have", "has", "had", "will", "would",
		"can", "could", "should", "may", "might", "must", "do", "does", "did",
		"done", "doing",
		// pronouns
		"it", "i", "you", "he", "she", "we", "they", "me", "him", "her", "us",
		"them", "my", "your", "his", "its", "our", "their", "mine", "yours",
		"hers", "ours", "theirs",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopword reports whether word, compared case-insensitively, is in the
// fixed English stopword set.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// FilterTokens applies the page pipeline pre-filter: tokens whose lower-cased
// form is a stopword, or whose length is <= 2 characters, are removed.
// The relative order of the remaining tokens is preserved and the input slice
// is not modified.
//
// This filter is NOT used by Summarize, whose frequency table only applies
// the length rule.
func FilterTokens(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if IsStopword(t) || tokenLength(t) < minKeywordLength {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
