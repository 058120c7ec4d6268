package textanalysis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DefaultTopK is the number of entries returned by RankNGrams.
const DefaultTopK = 20

// NGram is one ranked gram: the space-joined, lower-cased token window and the
// number of times it occurred.
//
// On the wire an NGram is the two-element array ["gram text", count].
type NGram struct {
	Text  string
	Count int
}

// MarshalJSON encodes the gram as ["text", count].
func (g NGram) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{g.Text, g.Count})
}

// UnmarshalJSON decodes the ["text", count] form produced by MarshalJSON.
func (g *NGram) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("ngram: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("ngram: expected [text, count], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &g.Text); err != nil {
		return fmt.Errorf("ngram text: %w", err)
	}
	if err := json.Unmarshal(pair[1], &g.Count); err != nil {
		return fmt.Errorf("ngram count: %w", err)
	}
	return nil
}

// gramCounter is an insertion-ordered frequency table. Iterating entries yields
// grams in first-seen order, which is what makes the ranking tie-break
// deterministic.
type gramCounter struct {
	index   map[string]int
	entries []NGram
}

func newGramCounter() *gramCounter {
	return &gramCounter{index: make(map[string]int), entries: []NGram{}}
}

func (c *gramCounter) add(gram string) {
	if i, ok := c.index[gram]; ok {
		c.entries[i].Count++
		return
	}
	c.index[gram] = len(c.entries)
	c.entries = append(c.entries, NGram{Text: gram, Count: 1})
}

// RankNGrams returns the DefaultTopK most frequent n-grams of tokens.
// See RankNGramsLimit.
func RankNGrams(tokens []string, n int) []NGram {
	return RankNGramsLimit(tokens, n, DefaultTopK)
}

// RankNGramsLimit slides a window of n tokens over the sequence, joins each
// window with a single space and lower-cases it, skips grams whose joined
// length is <= 1 character, and counts the rest.
//
// The result is sorted by count descending. Ties keep first-seen order (stable
// sort over an insertion-ordered table). At most limit entries are returned;
// limit <= 0 returns every gram.
//
// A sequence shorter than n, or n < 1, yields an empty, non-nil result.
//
// Example:
//
//	RankNGrams([]string{"the", "quick", "fox", "the", "quick", "cat"}, 2)
//	// [{"the quick" 2} {"quick fox" 1} {"fox the" 1} {"quick cat" 1}]
func RankNGramsLimit(tokens []string, n, limit int) []NGram {
	if n < 1 || len(tokens) < n {
		return []NGram{}
	}

	counter := newGramCounter()
	for i := 0; i+n <= len(tokens); i++ {
		gram := strings.ToLower(strings.Join(tokens[i:i+n], " "))
		if tokenLength(gram) <= 1 {
			continue
		}
		counter.add(gram)
	}

	ranked := counter.entries
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
