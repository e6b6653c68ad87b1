package matching

import (
	"slices"

	"github.com/antzucaro/matchr"

	"gedcompare/internal/gedcom"
	"gedcompare/internal/textutil"
)

// DefaultSuggestionLimit caps Suggest when the caller passes a non-positive limit.
const DefaultSuggestionLimit = 5

// Suggestion is a candidate for a manual match. Suggestions are advisory and
// never change the match set.
type Suggestion struct {
	Person          gedcom.Individual `json:"person" yaml:"person"`
	NameSimilarity  float64           `json:"nameSimilarity" yaml:"nameSimilarity"`
	JaroWinkler     float64           `json:"jaroWinkler" yaml:"jaroWinkler"`
	SurnameSoundex  bool              `json:"surnameSoundex" yaml:"surnameSoundex"`
	BirthDateAgrees bool              `json:"birthDateAgrees" yaml:"birthDateAgrees"`
	Likely          bool              `json:"likely" yaml:"likely"`
}

// Suggest ranks candidates by name similarity to person, highest first, and
// returns at most limit of them. Ties keep candidate order.
func Suggest(person gedcom.Individual, candidates []gedcom.Individual, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Suggestion{
			Person:          c,
			NameSimilarity:  textutil.Similarity(person.FullName, c.FullName),
			JaroWinkler:     matchr.JaroWinkler(person.FullName, c.FullName, false),
			SurnameSoundex:  soundexAgrees(person.Surname, c.Surname),
			BirthDateAgrees: person.BirthDate != "" && person.BirthDate == c.BirthDate,
			Likely:          LikelySamePerson(person, c),
		})
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int {
		switch {
		case a.NameSimilarity > b.NameSimilarity:
			return -1
		case a.NameSimilarity < b.NameSimilarity:
			return 1
		default:
			return 0
		}
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func soundexAgrees(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return matchr.Soundex(a) == matchr.Soundex(b)
}
