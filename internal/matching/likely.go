package matching

import (
	"gedcompare/internal/gedcom"
	"gedcompare/internal/textutil"
)

// NameSimilarityThreshold is the exclusive lower bound on name similarity for
// two people with the same birth date to count as a likely match.
const NameSimilarityThreshold = 0.8

// LikelySamePerson reports whether two records probably describe the same
// person. Both birth dates must be present and equal; the names must then be
// identical or more than NameSimilarityThreshold similar. Records missing a
// birth date on either side never qualify.
func LikelySamePerson(left, right gedcom.Individual) bool {
	if left.BirthDate == "" || left.BirthDate != right.BirthDate {
		return false
	}
	if left.FullName == right.FullName {
		return true
	}
	return textutil.Similarity(left.FullName, right.FullName) > NameSimilarityThreshold
}
