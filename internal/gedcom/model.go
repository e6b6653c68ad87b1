package gedcom

import "fmt"

// SubField is one level-2 annotation attached to a level-1 field.
type SubField struct {
	Tag   string `json:"tag" yaml:"tag"`
	Value string `json:"value" yaml:"value"`
}

// Field is a single level-1 value together with the level-2 lines beneath it.
type Field struct {
	Value string     `json:"value" yaml:"value"`
	Subs  []SubField `json:"subs,omitempty" yaml:"subs,omitempty"`
}

// Sub returns the first non-empty value recorded for tag.
func (f Field) Sub(tag string) (string, bool) {
	for _, sub := range f.Subs {
		if sub.Tag == tag && sub.Value != "" {
			return sub.Value, true
		}
	}
	return "", false
}

// Individual is one parsed person. Optional attributes are empty when the
// source did not provide them.
type Individual struct {
	ID               string             `json:"id" yaml:"id"`
	FullName         string             `json:"fullName" yaml:"fullName"`
	GivenNames       string             `json:"givenNames" yaml:"givenNames"`
	Surname          string             `json:"surname" yaml:"surname"`
	BirthDate        string             `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	BirthPlace       string             `json:"birthPlace,omitempty" yaml:"birthPlace,omitempty"`
	DeathDate        string             `json:"deathDate,omitempty" yaml:"deathDate,omitempty"`
	DeathPlace       string             `json:"deathPlace,omitempty" yaml:"deathPlace,omitempty"`
	Sex              string             `json:"sex,omitempty" yaml:"sex,omitempty"`
	SpouseFamilyRefs []string           `json:"spouseFamilyRefs,omitempty" yaml:"spouseFamilyRefs,omitempty"`
	ChildFamilyRefs  []string           `json:"childFamilyRefs,omitempty" yaml:"childFamilyRefs,omitempty"`
	Notes            string             `json:"notes,omitempty" yaml:"notes,omitempty"`
	RawFields        map[string][]Field `json:"rawFields,omitempty" yaml:"rawFields,omitempty"`
}

// DisplayName renders the name with the birth date appended when known,
// e.g. "John Smith (b. 1900)".
func (p Individual) DisplayName() string {
	if p.BirthDate == "" {
		return p.FullName
	}
	return fmt.Sprintf("%s (b. %s)", p.FullName, p.BirthDate)
}

// ParseStats summarizes what the parser skipped.
type ParseStats struct {
	Lines          int `json:"lines"`
	MalformedLines int `json:"malformedLines"`
	DuplicateIDs   int `json:"duplicateIds"`
}

// RecordSet is the immutable result of parsing one source.
type RecordSet struct {
	Source      string
	Individuals []Individual
	Stats       ParseStats
}

// Len returns the number of individuals.
func (s RecordSet) Len() int {
	return len(s.Individuals)
}

// Find returns the individual with the given id.
func (s RecordSet) Find(id string) (Individual, bool) {
	return FindByID(s.Individuals, id)
}

// FindByID searches people for id in order.
func FindByID(people []Individual, id string) (Individual, bool) {
	for _, person := range people {
		if person.ID == id {
			return person, true
		}
	}
	return Individual{}, false
}
