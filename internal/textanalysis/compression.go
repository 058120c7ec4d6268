package textanalysis

import (
	"strconv"
	"strings"
	"unicode"
)

// Compression levels accepted by the compressor. Each maps to a fixed ratio of
// sentences to keep.
const (
	LevelOriginal = 1 // 100%
	LevelLight    = 2 // 75%
	LevelHalf     = 3 // 50%
	LevelHeavy    = 4 // 25%
	LevelSummary  = 5 // 10%
)

// DefaultRatio is used for any level outside 1..5, including a missing level.
const DefaultRatio = 1.0

var levelRatios = map[int]float64{
	LevelOriginal: 1.0,
	LevelLight:    0.75,
	LevelHalf:     0.50,
	LevelHeavy:    0.25,
	LevelSummary:  0.10,
}

// RatioForLevel maps a compression level to its ratio.
//
//	1 -> 1.0, 2 -> 0.75, 3 -> 0.50, 4 -> 0.25, 5 -> 0.10, otherwise 1.0
func RatioForLevel(level int) float64 {
	if r, ok := levelRatios[level]; ok {
		return r
	}
	return DefaultRatio
}

// ParseLevel reads the integer prefix of s: leading whitespace, an optional
// sign, then decimal digits. Anything after the digits is ignored ("3.9" is 3,
// "4px" is 4). A string without a leading integer yields 0, which RatioForLevel
// treats as the default.
func ParseLevel(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
