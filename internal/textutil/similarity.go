package textutil

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// EditDistance returns the number of single-rune insertions, deletions and
// substitutions needed to turn a into b.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity computes 1 - distance/len(longer). Two empty strings are
// identical and score 1.0. The comparison is case-sensitive.
func Similarity(a, b string) float64 {
	longer := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longer {
		longer = n
	}
	if longer == 0 {
		return 1.0
	}
	return float64(longer-EditDistance(a, b)) / float64(longer)
}
