package textanalysis

// StopwordCount returns the number of entries in the stopword set.
func StopwordCount() int {
	return len(stopwords)
}
