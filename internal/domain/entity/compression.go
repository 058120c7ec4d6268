package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"page-insight/internal/textanalysis"
)

// CompressionLevel is the requested compression strength, 1 (keep everything)
// through 5 (keep about a tenth of the sentences). Any other value, including
// a missing one, behaves like level 1.
type CompressionLevel int

// Ratio returns the fraction of sentences kept at this level.
func (l CompressionLevel) Ratio() float64 {
	return textanalysis.RatioForLevel(int(l))
}

// UnmarshalJSON accepts a JSON number or a string holding an integer prefix
// ("3", "4 ", "2.5"). Fractions are truncated toward zero. null, booleans and
// unparseable strings decode to 0 without error.
func (l *CompressionLevel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*l = 0
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = CompressionLevel(textanalysis.ParseLevel(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			*l = 0
			return nil
		}
		*l = CompressionLevel(math.Trunc(f))
	default:
		*l = 0
	}
	return nil
}

// CompressionResult is the JSON envelope returned by text compression.
// Lengths are rune counts of the input and output text.
type CompressionResult struct {
	OriginalLength   int     `json:"originalLength"`
	CompressedLength int     `json:"compressedLength"`
	Ratio            float64 `json:"ratio"`
	Text             string  `json:"text"`
}
