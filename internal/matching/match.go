package matching

import (
	"fmt"
	"strings"

	"gedcompare/internal/gedcom"
)

// Match links one left-side individual to one right-side individual.
type Match struct {
	LeftID      string   `json:"leftId" yaml:"leftId"`
	RightID     string   `json:"rightId" yaml:"rightId"`
	Manual      bool     `json:"manual" yaml:"manual"`
	Differences []string `json:"differences" yaml:"differences"`
}

// Side selects one of the two record sets being compared.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// ParseSide accepts "left"/"l" and "right"/"r" in any case.
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return Left, fmt.Errorf("unknown side %q (want left or right)", value)
	}
}

// idOn returns the id the match holds for side.
func (m Match) idOn(side Side) string {
	if side == Right {
		return m.RightID
	}
	return m.LeftID
}

func newMatch(left, right gedcom.Individual, manual bool) Match {
	return Match{
		LeftID:      left.ID,
		RightID:     right.ID,
		Manual:      manual,
		Differences: ComputeDifferences(left, right),
	}
}

// AutoMatch pairs people with greedy first-fit: each left person, in order,
// takes the first unused right person for which LikelySamePerson holds.
func AutoMatch(left, right []gedcom.Individual) []Match {
	matches := make([]Match, 0)
	used := make(map[string]struct{}, len(right))

	for _, l := range left {
		for _, r := range right {
			if _, taken := used[r.ID]; taken {
				continue
			}
			if LikelySamePerson(l, r) {
				matches = append(matches, newMatch(l, r, false))
				used[r.ID] = struct{}{}
				break
			}
		}
	}
	return matches
}

// AddManualMatch drops every match that references leftID or rightID and, if
// both ids resolve to people, appends a manual match between them. When an id
// does not resolve the filtered list is returned without the new match.
func AddManualMatch(matches []Match, left, right []gedcom.Individual, leftID, rightID string) []Match {
	filtered := make([]Match, 0, len(matches)+1)
	for _, m := range matches {
		if m.LeftID == leftID || m.RightID == rightID {
			continue
		}
		filtered = append(filtered, m)
	}

	l, okLeft := gedcom.FindByID(left, leftID)
	r, okRight := gedcom.FindByID(right, rightID)
	if okLeft && okRight {
		filtered = append(filtered, newMatch(l, r, true))
	}
	return filtered
}

// RemoveMatch drops the match between exactly leftID and rightID.
func RemoveMatch(matches []Match, leftID, rightID string) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.LeftID == leftID && m.RightID == rightID {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Unmatched returns the people on side that no match references.
func Unmatched(side Side, people []gedcom.Individual, matches []Match) []gedcom.Individual {
	matched := matchedIDs(side, matches)
	out := make([]gedcom.Individual, 0, len(people))
	for _, p := range people {
		if _, ok := matched[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// MatchFor finds the match referencing id on side.
func MatchFor(matches []Match, id string, side Side) (Match, bool) {
	for _, m := range matches {
		if m.idOn(side) == id {
			return m, true
		}
	}
	return Match{}, false
}

// HasPair reports whether leftID and rightID are matched to each other.
func HasPair(matches []Match, leftID, rightID string) bool {
	for _, m := range matches {
		if m.LeftID == leftID && m.RightID == rightID {
			return true
		}
	}
	return false
}

func matchedIDs(side Side, matches []Match) map[string]struct{} {
	ids := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		ids[m.idOn(side)] = struct{}{}
	}
	return ids
}
