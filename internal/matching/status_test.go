package matching_test

import (
	"fmt"
	"reflect"
	"testing"

	"gedcompare/internal/gedcom"
	"gedcompare/internal/matching"
)

func statusFixture() ([]gedcom.Individual, []matching.Match) {
	people := []gedcom.Individual{
		person("U1", "Unmatched One", ""),
		person("M1", "Matched One", "1900"),
		person("D1", "Different One", "1901"),
		person("U2", "Unmatched Two", ""),
		person("M2", "Matched Two", "1902"),
	}
	matches := []matching.Match{
		{LeftID: "M1", RightID: "r1", Differences: []string{}},
		{LeftID: "D1", RightID: "r2", Differences: []string{`Sex: "M" vs "F"`}},
		{LeftID: "M2", RightID: "r3", Differences: []string{}},
	}
	return people, matches
}

func TestStatusOf(t *testing.T) {
	_, matches := statusFixture()
	tests := []struct {
		id   string
		side matching.Side
		want matching.Status
	}{
		{"M1", matching.Left, matching.StatusMatched},
		{"D1", matching.Left, matching.StatusDifferent},
		{"U1", matching.Left, matching.StatusUnmatched},
		{"r2", matching.Right, matching.StatusDifferent},
		{"M1", matching.Right, matching.StatusUnmatched},
	}
	for _, tt := range tests {
		if got := matching.StatusOf(tt.id, tt.side, matches); got != tt.want {
			t.Errorf("StatusOf(%s, %s) = %s, want %s", tt.id, tt.side, got, tt.want)
		}
	}
}

func TestSortByStatusIsStable(t *testing.T) {
	people, matches := statusFixture()
	sorted := matching.SortByStatus(people, matching.Left, matches)
	want := []string{"D1", "M1", "M2", "U1", "U2"}
	if got := ids(sorted); !reflect.DeepEqual(got, want) {
		t.Fatalf("SortByStatus = %v, want %v", got, want)
	}
	if people[0].ID != "U1" {
		t.Fatal("input slice was reordered")
	}
}

func TestSortByStatusAgreesWithStatusOf(t *testing.T) {
	var people []gedcom.Individual
	var matches []matching.Match
	for i := range 30 {
		id := fmt.Sprintf("L%02d", i)
		people = append(people, person(id, "Person "+id, ""))
		switch i % 3 {
		case 0:
			matches = append(matches, matching.Match{LeftID: id, RightID: "R" + id, Differences: []string{`Sex: "M" vs "F"`}})
		case 1:
			matches = append(matches, matching.Match{LeftID: id, RightID: "R" + id, Differences: []string{}})
		}
	}

	sorted := matching.SortByStatus(people, matching.Left, matches)
	if len(sorted) != len(people) {
		t.Fatalf("sorted %d people, want %d", len(sorted), len(people))
	}
	want := []matching.Status{matching.StatusDifferent, matching.StatusMatched, matching.StatusUnmatched}
	for i, p := range sorted {
		if got := matching.StatusOf(p.ID, matching.Left, matches); got != want[i/10] {
			t.Fatalf("position %d (%s) has status %s, want %s", i, p.ID, got, want[i/10])
		}
	}
	if sorted[0].ID != "L00" || sorted[10].ID != "L01" || sorted[20].ID != "L02" {
		t.Fatalf("groups not stable: %s %s %s", sorted[0].ID, sorted[10].ID, sorted[20].ID)
	}
}

func TestFilterPeople(t *testing.T) {
	people, matches := statusFixture()
	tests := []struct {
		filter matching.Filter
		want   []string
	}{
		{matching.FilterAll, []string{"U1", "M1", "D1", "U2", "M2"}},
		{matching.FilterMatched, []string{"M1", "D1", "M2"}},
		{matching.FilterUnmatched, []string{"U1", "U2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := ids(matching.FilterPeople(people, matching.Left, matches, tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterPeople(%s) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	if f, err := matching.ParseFilter(""); err != nil || f != matching.FilterAll {
		t.Fatalf("ParseFilter(\"\") = %v, %v", f, err)
	}
	if f, err := matching.ParseFilter("Unmatched"); err != nil || f != matching.FilterUnmatched {
		t.Fatalf("ParseFilter(Unmatched) = %v, %v", f, err)
	}
	if _, err := matching.ParseFilter("sometimes"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}
