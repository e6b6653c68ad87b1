package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"gedcompare/internal/gedcom"
	"gedcompare/internal/matching"
	"gedcompare/internal/session"
)

const timestampLayout = "2006-01-02 15:04"

// personRow is one person as listed by compare and session show.
type personRow struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	BirthDate   string          `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	Status      matching.Status `json:"status" yaml:"status"`
	MatchedWith string          `json:"matchedWith,omitempty" yaml:"matchedWith,omitempty"`
	Manual      bool            `json:"manual,omitempty" yaml:"manual,omitempty"`
	Differences []string        `json:"differences,omitempty" yaml:"differences,omitempty"`
}

type sessionView struct {
	ID            string          `json:"id,omitempty" yaml:"id,omitempty"`
	Created       string          `json:"created,omitempty" yaml:"created,omitempty"`
	LeftFilename  string          `json:"leftFilename" yaml:"leftFilename"`
	RightFilename string          `json:"rightFilename" yaml:"rightFilename"`
	Filter        matching.Filter `json:"filter" yaml:"filter"`
	Stats         session.Stats   `json:"stats" yaml:"stats"`
	Left          []personRow     `json:"left" yaml:"left"`
	Right         []personRow     `json:"right" yaml:"right"`
}

func buildSessionView(sess session.Session, filter matching.Filter, includeID bool) sessionView {
	view := sessionView{
		LeftFilename:  sess.LeftFilename,
		RightFilename: sess.RightFilename,
		Filter:        filter,
		Stats:         sess.Stats(),
		Left:          buildPersonRows(sess, matching.Left, filter),
		Right:         buildPersonRows(sess, matching.Right, filter),
	}
	if includeID {
		view.ID = sess.ID
		view.Created = formatCreated(sess.CreatedAt())
	}
	return view
}

func buildPersonRows(sess session.Session, side matching.Side, filter matching.Filter) []personRow {
	people := matching.FilterPeople(sess.People(side), side, sess.Matches, filter)
	people = matching.SortByStatus(people, side, sess.Matches)

	rows := make([]personRow, 0, len(people))
	for _, p := range people {
		row := personRow{
			ID:        p.ID,
			Name:      p.FullName,
			BirthDate: p.BirthDate,
			Status:    matching.StatusOf(p.ID, side, sess.Matches),
		}
		if m, ok := sess.MatchFor(p.ID, side); ok {
			row.MatchedWith = m.RightID
			if side == matching.Right {
				row.MatchedWith = m.LeftID
			}
			row.Manual = m.Manual
			row.Differences = m.Differences
		}
		rows = append(rows, row)
	}
	return rows
}

func printSessionView(w io.Writer, view sessionView, colorize bool) {
	if view.ID != "" {
		fmt.Fprintf(w, "Session %s (created %s)\n", view.ID, view.Created)
	}
	st := view.Stats
	fmt.Fprintf(w, "Left:  %s (%d people)\n", view.LeftFilename, st.Left)
	fmt.Fprintf(w, "Right: %s (%d people)\n", view.RightFilename, st.Right)
	fmt.Fprintf(w, "Matched: %d (manual %d, with differences %d)\n", st.Matched, st.Manual, st.Different)
	fmt.Fprintf(w, "Unmatched: %d left, %d right\n", st.UnmatchedLeft, st.UnmatchedRight)
	if view.Filter != matching.FilterAll {
		fmt.Fprintf(w, "Showing: %s\n", view.Filter)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderPeopleTable("Left: "+view.LeftFilename, view.Left, colorize))
	fmt.Fprintln(w, renderPeopleTable("Right: "+view.RightFilename, view.Right, colorize))
}

func renderPeopleTable(title string, rows []personRow, colorize bool) string {
	spec := tableSpec{
		title:   title,
		headers: []string{"Status", "ID", "Name", "Born", "Matched With", "Differences"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		matched := r.MatchedWith
		if matched != "" && r.Manual {
			matched += " (manual)"
		}
		diffs := ""
		if r.Status != matching.StatusUnmatched {
			diffs = fmt.Sprintf("%d", len(r.Differences))
		}
		spec.rows = append(spec.rows, []string{
			statusLabel(r.Status, colorize),
			r.ID,
			r.Name,
			r.BirthDate,
			matched,
			diffs,
		})
	}
	return renderTable(spec)
}

func renderIndividualsTable(set gedcom.RecordSet) string {
	spec := tableSpec{
		title:   fmt.Sprintf("%s (%d individuals)", set.Source, set.Len()),
		headers: []string{"ID", "Person", "Sex", "Birth Place", "Death"},
		rows:    make([][]string, 0, set.Len()),
	}
	for _, p := range set.Individuals {
		death := strings.TrimSpace(strings.Join([]string{p.DeathDate, p.DeathPlace}, " "))
		spec.rows = append(spec.rows, []string{p.ID, p.DisplayName(), p.Sex, p.BirthPlace, death})
	}
	return renderTable(spec)
}

func renderSessionList(sessions []session.Session) string {
	spec := tableSpec{
		headers: []string{"ID", "Created", "Age", "Left", "Right", "Matched", "Manual", "Unmatched"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
		rows:    make([][]string, 0, len(sessions)),
	}
	for _, s := range sessions {
		st := s.Stats()
		spec.rows = append(spec.rows, []string{
			s.ID,
			formatCreated(s.CreatedAt()),
			humanize.Time(s.CreatedAt()),
			s.LeftFilename,
			s.RightFilename,
			fmt.Sprintf("%d", st.Matched),
			fmt.Sprintf("%d", st.Manual),
			fmt.Sprintf("%d/%d", st.UnmatchedLeft, st.UnmatchedRight),
		})
	}
	return renderTable(spec)
}

func formatCreated(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

func renderComparisonTable(rows []matching.FieldComparison, colorize bool) string {
	spec := tableSpec{
		headers: []string{"Field", "Left", "Right", "Differs"},
		rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		differs := yesNo(r.Differs)
		if colorize && r.Differs {
			differs = statusColor(matching.StatusDifferent).Sprint(differs)
		}
		spec.rows = append(spec.rows, []string{r.Label, r.Left, r.Right, differs})
	}
	return renderTable(spec)
}

func renderSuggestionTable(title string, suggestions []matching.Suggestion) string {
	spec := tableSpec{
		title:   title,
		headers: []string{"ID", "Person", "Similarity", "Jaro-Winkler", "Soundex", "Same Birth", "Likely"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
		rows:    make([][]string, 0, len(suggestions)),
	}
	for _, s := range suggestions {
		spec.rows = append(spec.rows, []string{
			s.Person.ID,
			s.Person.DisplayName(),
			fmt.Sprintf("%.2f", s.NameSimilarity),
			fmt.Sprintf("%.2f", s.JaroWinkler),
			yesNo(s.SurnameSoundex),
			yesNo(s.BirthDateAgrees),
			yesNo(s.Likely),
		})
	}
	return renderTable(spec)
}
