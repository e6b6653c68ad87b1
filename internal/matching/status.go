package matching

import (
	"fmt"
	"slices"
	"strings"

	"gedcompare/internal/gedcom"
)

// Status classifies one person against the current match set.
type Status string

const (
	StatusDifferent Status = "different"
	StatusMatched   Status = "matched"
	StatusUnmatched Status = "unmatched"
)

func (s Status) rank() int {
	switch s {
	case StatusDifferent:
		return 0
	case StatusMatched:
		return 1
	default:
		return 2
	}
}

// StatusOf reports whether id on side is unmatched, matched cleanly, or
// matched with differences.
func StatusOf(id string, side Side, matches []Match) Status {
	m, ok := MatchFor(matches, id, side)
	if !ok {
		return StatusUnmatched
	}
	return matchStatus(m)
}

func matchStatus(m Match) Status {
	if len(m.Differences) > 0 {
		return StatusDifferent
	}
	return StatusMatched
}

// statusesByID maps every id on side that has a match to its status. The
// first match for an id wins, as in MatchFor.
func statusesByID(side Side, matches []Match) map[string]Status {
	out := make(map[string]Status, len(matches))
	for _, m := range matches {
		id := m.idOn(side)
		if _, seen := out[id]; !seen {
			out[id] = matchStatus(m)
		}
	}
	return out
}

// SortByStatus orders people different, then matched, then unmatched. People
// with the same status keep their relative order.
func SortByStatus(people []gedcom.Individual, side Side, matches []Match) []gedcom.Individual {
	statuses := statusesByID(side, matches)
	rank := func(id string) int {
		status, ok := statuses[id]
		if !ok {
			return StatusUnmatched.rank()
		}
		return status.rank()
	}

	out := slices.Clone(people)
	slices.SortStableFunc(out, func(a, b gedcom.Individual) int {
		return rank(a.ID) - rank(b.ID)
	})
	return out
}

// Filter narrows a people listing.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterMatched   Filter = "matched"
	FilterUnmatched Filter = "unmatched"
)

// ParseFilter validates a filter name. An empty value means FilterAll.
func ParseFilter(value string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterMatched, FilterUnmatched:
		return f, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, matched or unmatched)", value)
	}
}

// FilterPeople keeps the people on side selected by filter. Matched includes
// matches with differences.
func FilterPeople(people []gedcom.Individual, side Side, matches []Match, filter Filter) []gedcom.Individual {
	if filter == FilterAll || filter == "" {
		return slices.Clone(people)
	}
	matched := matchedIDs(side, matches)
	out := make([]gedcom.Individual, 0, len(people))
	for _, p := range people {
		_, ok := matched[p.ID]
		if ok == (filter == FilterMatched) {
			out = append(out, p)
		}
	}
	return out
}
