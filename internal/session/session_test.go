package session_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"gedcompare/internal/gedcom"
	"gedcompare/internal/matching"
	"gedcompare/internal/session"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T) session.Session {
	t.Helper()
	left := gedcom.RecordSet{
		Source: "left.ged",
		Individuals: []gedcom.Individual{
			{ID: "L1", FullName: "John Smith", BirthDate: "1900", Sex: "M"},
			{ID: "L2", FullName: "Mary Jones", BirthDate: "1902"},
			{ID: "L3", FullName: "Nobody Known"},
		},
	}
	right := gedcom.RecordSet{
		Source: "right.ged",
		Individuals: []gedcom.Individual{
			{ID: "R1", FullName: "Jon Smith", BirthDate: "1900"},
			{ID: "R2", FullName: "Mary Jones", BirthDate: "1902"},
			{ID: "R3", FullName: "Someone Else", BirthDate: "1950"},
		},
	}
	return session.New(left, right,
		session.WithClock(func() time.Time { return fixedTime }),
		session.WithIDGenerator(func() string { return "sess-1" }),
	)
}

func TestNewSeedsAutomaticMatches(t *testing.T) {
	s := newSession(t)
	if s.ID != "sess-1" || s.Timestamp != fixedTime.UnixMilli() {
		t.Fatalf("unexpected identity %s/%d", s.ID, s.Timestamp)
	}
	if !s.CreatedAt().Equal(fixedTime) {
		t.Fatalf("CreatedAt = %v", s.CreatedAt())
	}
	if s.LeftFilename != "left.ged" || s.RightFilename != "right.ged" {
		t.Fatalf("unexpected filenames %q %q", s.LeftFilename, s.RightFilename)
	}
	if !s.HasPair("L1", "R1") || !s.HasPair("L2", "R2") || len(s.Matches) != 2 {
		t.Fatalf("unexpected matches %+v", s.Matches)
	}
	m, ok := s.MatchFor("L1", matching.Left)
	if !ok || !reflect.DeepEqual(m.Differences, []string{`Sex: "M" vs "N/A"`}) {
		t.Fatalf("L1 match = %+v, %v", m, ok)
	}
}

func TestNewUsesRandomIDByDefault(t *testing.T) {
	a := session.New(gedcom.RecordSet{}, gedcom.RecordSet{})
	b := session.New(gedcom.RecordSet{}, gedcom.RecordSet{})
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.LeftPeople == nil || a.Matches == nil {
		t.Fatal("expected non-nil slices")
	}
}

func TestMatchIsCopyOnWrite(t *testing.T) {
	s := newSession(t)
	next := s.Match("L3", "R3")

	if s.HasPair("L3", "R3") {
		t.Fatal("original session mutated")
	}
	if !next.HasPair("L3", "R3") {
		t.Fatal("expected new pair in returned session")
	}
	m, _ := next.MatchFor("R3", matching.Right)
	if !m.Manual {
		t.Fatalf("expected manual match, got %+v", m)
	}
	if len(next.Unmatched(matching.Left)) != 0 || len(next.Unmatched(matching.Right)) != 0 {
		t.Fatal("expected everyone matched")
	}
}

func TestMatchStealsExistingPartner(t *testing.T) {
	s := newSession(t).Match("L3", "R1")
	if s.HasPair("L1", "R1") {
		t.Fatal("expected L1/R1 replaced")
	}
	if _, ok := s.MatchFor("L1", matching.Left); ok {
		t.Fatal("expected L1 unmatched")
	}
}

func TestUnmatchAndReset(t *testing.T) {
	s := newSession(t)
	edited := s.Unmatch("L1", "R1").Match("L3", "R3")
	if edited.HasPair("L1", "R1") || !edited.HasPair("L3", "R3") {
		t.Fatalf("unexpected edited matches %+v", edited.Matches)
	}

	reset := edited.ResetToAutomatic()
	if !reflect.DeepEqual(reset.Matches, s.Matches) {
		t.Fatalf("reset = %+v, want %+v", reset.Matches, s.Matches)
	}
	if !edited.HasPair("L3", "R3") {
		t.Fatal("reset mutated its receiver")
	}
}

func TestStats(t *testing.T) {
	s := newSession(t).Match("L3", "R3")
	got := s.Stats()
	want := session.Stats{
		Left: 3, Right: 3, Matched: 3, Manual: 1, Different: 2,
		UnmatchedLeft: 0, UnmatchedRight: 0,
	}
	if got != want {
		t.Fatalf("Stats = %+v, want %+v", got, want)
	}
}

func TestPersonAndSets(t *testing.T) {
	s := newSession(t)
	p, ok := s.Person(matching.Right, "R3")
	if !ok || p.FullName != "Someone Else" {
		t.Fatalf("Person = %+v, %v", p, ok)
	}
	if _, ok := s.Person(matching.Left, "R3"); ok {
		t.Fatal("expected lookup on wrong side to fail")
	}
	if s.LeftSet().Len() != 3 || s.RightSet().Source != "right.ged" {
		t.Fatal("unexpected record sets")
	}
	if s.Filename(matching.Right) != "right.ged" {
		t.Fatal("unexpected right filename")
	}
}

func TestMarshalUsesDocumentKeys(t *testing.T) {
	data, err := session.Marshal(newSession(t))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"id", "timestamp", "leftFilename", "rightFilename", "leftPeople", "rightPeople", "matches"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}

	var matches []map[string]json.RawMessage
	if err := json.Unmarshal(doc["matches"], &matches); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	for _, key := range []string{"leftId", "rightId", "manual", "differences"} {
		if _, ok := matches[0][key]; !ok {
			t.Errorf("missing match key %q", key)
		}
	}

	var people []map[string]json.RawMessage
	if err := json.Unmarshal(doc["leftPeople"], &people); err != nil {
		t.Fatalf("decode people: %v", err)
	}
	if _, ok := people[1]["sex"]; ok {
		t.Error("absent sex should be omitted")
	}
}

func TestUnmarshalRoundTrip(t *testing.T) {
	orig := newSession(t).Match("L3", "R3")
	data, err := session.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := session.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
}

func TestUnmarshalRejectsMissingID(t *testing.T) {
	_, err := session.Unmarshal([]byte(`{"timestamp": 1}`))
	if !errors.Is(err, session.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := session.Unmarshal([]byte(`{`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUnmarshalFillsEmptySlices(t *testing.T) {
	got, err := session.Unmarshal([]byte(`{"id":"x","matches":[{"leftId":"a","rightId":"b"}]}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.LeftPeople == nil || got.RightPeople == nil || got.Matches[0].Differences == nil {
		t.Fatalf("expected non-nil slices: %+v", got)
	}
}

func TestSortByTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		sessions []session.Session
		want     []string
	}{
		{
			name:     "ties broken by id",
			sessions: []session.Session{{ID: "c", Timestamp: 3}, {ID: "b", Timestamp: 1}, {ID: "a", Timestamp: 1}},
			want:     []string{"a:", "b:", "c:"},
		},
		{
			name: "full duplicates keep input order",
			sessions: []session.Session{
				{ID: "x", Timestamp: 2, LeftFilename: "second.ged"},
				{ID: "x", Timestamp: 2, LeftFilename: "first.ged"},
				{ID: "w", Timestamp: 5},
			},
			want: []string{"x:second.ged", "x:first.ged", "w:"},
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session.SortByTimestamp(tt.sessions)
			var got []string
			for _, s := range tt.sessions {
				got = append(got, s.ID+":"+s.LeftFilename)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("order = %v, want %v", got, tt.want)
			}
		})
	}
}
