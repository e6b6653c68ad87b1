package matching

import (
	"fmt"

	"gedcompare/internal/gedcom"
)

// MissingValue stands in for an absent attribute in difference text.
const MissingValue = "N/A"

// FieldComparison is one row of a side-by-side person comparison.
type FieldComparison struct {
	Label   string `json:"label" yaml:"label"`
	Left    string `json:"left,omitempty" yaml:"left,omitempty"`
	Right   string `json:"right,omitempty" yaml:"right,omitempty"`
	Differs bool   `json:"differs" yaml:"differs"`
}

// String renders the comparison as `Label: "left" vs "right"`. Values are
// written as-is, without escaping.
func (c FieldComparison) String() string {
	return fmt.Sprintf("%s: \"%s\" vs \"%s\"", c.Label, orMissing(c.Left), orMissing(c.Right))
}

type fieldAccessor struct {
	label string
	get   func(gedcom.Individual) string
}

// diffFields is the fixed order in which differences are reported.
var diffFields = []fieldAccessor{
	{"Birth Date", func(p gedcom.Individual) string { return p.BirthDate }},
	{"Birth Place", func(p gedcom.Individual) string { return p.BirthPlace }},
	{"Death Date", func(p gedcom.Individual) string { return p.DeathDate }},
	{"Death Place", func(p gedcom.Individual) string { return p.DeathPlace }},
	{"Sex", func(p gedcom.Individual) string { return p.Sex }},
}

var nameField = fieldAccessor{"Name", func(p gedcom.Individual) string { return p.FullName }}

// ComputeDifferences lists, in fixed field order, every compared attribute
// whose values differ. Fields equal on both sides, including both absent,
// are omitted.
func ComputeDifferences(left, right gedcom.Individual) []string {
	out := make([]string, 0)
	for _, f := range diffFields {
		c := compare(f, left, right)
		if c.Differs {
			out = append(out, c.String())
		}
	}
	return out
}

// CompareFields returns the name and every difference field side by side.
func CompareFields(left, right gedcom.Individual) []FieldComparison {
	out := make([]FieldComparison, 0, len(diffFields)+1)
	out = append(out, compare(nameField, left, right))
	for _, f := range diffFields {
		out = append(out, compare(f, left, right))
	}
	return out
}

func compare(f fieldAccessor, left, right gedcom.Individual) FieldComparison {
	l, r := f.get(left), f.get(right)
	return FieldComparison{Label: f.label, Left: l, Right: r, Differs: l != r}
}

func orMissing(value string) string {
	if value == "" {
		return MissingValue
	}
	return value
}
