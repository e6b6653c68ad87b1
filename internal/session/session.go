package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"gedcompare/internal/gedcom"
	"gedcompare/internal/matching"
)

// Session is one comparison of two record sets together with its current
// matches. Sessions are values: mutating methods return a new Session and
// leave the receiver untouched.
type Session struct {
	ID            string              `json:"id" yaml:"id"`
	Timestamp     int64               `json:"timestamp" yaml:"timestamp"`
	LeftFilename  string              `json:"leftFilename" yaml:"leftFilename"`
	RightFilename string              `json:"rightFilename" yaml:"rightFilename"`
	LeftPeople    []gedcom.Individual `json:"leftPeople" yaml:"leftPeople"`
	RightPeople   []gedcom.Individual `json:"rightPeople" yaml:"rightPeople"`
	Matches       []matching.Match    `json:"matches" yaml:"matches"`
}

// Option customizes New.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides the clock used for the session timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides how session ids are produced.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// New starts a session over left and right, seeded with AutoMatch.
func New(left, right gedcom.RecordSet, opts ...Option) Session {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	leftPeople := nonNil(left.Individuals)
	rightPeople := nonNil(right.Individuals)
	return Session{
		ID:            o.newID(),
		Timestamp:     o.now().UnixMilli(),
		LeftFilename:  left.Source,
		RightFilename: right.Source,
		LeftPeople:    leftPeople,
		RightPeople:   rightPeople,
		Matches:       matching.AutoMatch(leftPeople, rightPeople),
	}
}

// CreatedAt converts the millisecond timestamp to a time.
func (s Session) CreatedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Match records a manual match between leftID and rightID, replacing any
// match either person already had. Unknown ids leave the result without a
// new match.
func (s Session) Match(leftID, rightID string) Session {
	s.Matches = matching.AddManualMatch(s.Matches, s.LeftPeople, s.RightPeople, leftID, rightID)
	return s
}

// Unmatch removes the match between leftID and rightID if present.
func (s Session) Unmatch(leftID, rightID string) Session {
	s.Matches = matching.RemoveMatch(s.Matches, leftID, rightID)
	return s
}

// ResetToAutomatic discards every match, manual ones included, and reruns
// AutoMatch over the stored people.
func (s Session) ResetToAutomatic() Session {
	s.Matches = matching.AutoMatch(s.LeftPeople, s.RightPeople)
	return s
}

// MatchFor returns the match referencing id on side.
func (s Session) MatchFor(id string, side matching.Side) (matching.Match, bool) {
	return matching.MatchFor(s.Matches, id, side)
}

// HasPair reports whether leftID and rightID are matched to each other.
func (s Session) HasPair(leftID, rightID string) bool {
	return matching.HasPair(s.Matches, leftID, rightID)
}

// Unmatched returns the people on side without a match.
func (s Session) Unmatched(side matching.Side) []gedcom.Individual {
	return matching.Unmatched(side, s.People(side), s.Matches)
}

// People returns the snapshot for side.
func (s Session) People(side matching.Side) []gedcom.Individual {
	if side == matching.Right {
		return s.RightPeople
	}
	return s.LeftPeople
}

// Filename returns the source filename for side.
func (s Session) Filename(side matching.Side) string {
	if side == matching.Right {
		return s.RightFilename
	}
	return s.LeftFilename
}

// Person looks up id on side.
func (s Session) Person(side matching.Side, id string) (gedcom.Individual, bool) {
	return gedcom.FindByID(s.People(side), id)
}

// LeftSet rebuilds the left record set from the snapshot.
func (s Session) LeftSet() gedcom.RecordSet {
	return gedcom.RecordSet{Source: s.LeftFilename, Individuals: s.LeftPeople}
}

// RightSet rebuilds the right record set from the snapshot.
func (s Session) RightSet() gedcom.RecordSet {
	return gedcom.RecordSet{Source: s.RightFilename, Individuals: s.RightPeople}
}

// Stats summarizes the match set.
type Stats struct {
	Left           int `json:"left" yaml:"left"`
	Right          int `json:"right" yaml:"right"`
	Matched        int `json:"matched" yaml:"matched"`
	Manual         int `json:"manual" yaml:"manual"`
	Different      int `json:"different" yaml:"different"`
	UnmatchedLeft  int `json:"unmatchedLeft" yaml:"unmatchedLeft"`
	UnmatchedRight int `json:"unmatchedRight" yaml:"unmatchedRight"`
}

// Stats counts matches and unmatched people on each side.
func (s Session) Stats() Stats {
	st := Stats{
		Left:    len(s.LeftPeople),
		Right:   len(s.RightPeople),
		Matched: len(s.Matches),
	}
	for _, m := range s.Matches {
		if m.Manual {
			st.Manual++
		}
		if len(m.Differences) > 0 {
			st.Different++
		}
	}
	st.UnmatchedLeft = len(s.Unmatched(matching.Left))
	st.UnmatchedRight = len(s.Unmatched(matching.Right))
	return st
}

// Normalize replaces nil slices with empty ones so a decoded session behaves
// like one built by New.
func (s Session) Normalize() Session {
	s.LeftPeople = nonNil(s.LeftPeople)
	s.RightPeople = nonNil(s.RightPeople)
	s.Matches = slices.Clone(s.Matches)
	if s.Matches == nil {
		s.Matches = []matching.Match{}
	}
	for i := range s.Matches {
		if s.Matches[i].Differences == nil {
			s.Matches[i].Differences = []string{}
		}
	}
	return s
}

func nonNil(people []gedcom.Individual) []gedcom.Individual {
	if people == nil {
		return []gedcom.Individual{}
	}
	return people
}
