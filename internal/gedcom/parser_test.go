package gedcom_test

import (
	"reflect"
	"strings"
	"testing"

	"gedcompare/internal/gedcom"
)

const sampleTree = `0 HEAD
1 SOUR TEST
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 BIRT
2 DATE 12 JAN 1900
2 PLAC Boston
1 DEAT
2 DATE 1970
1 FAMS @F1@
1 NOTE First note
1 NOTE Second
2 CONC ary
2 CONT third
0 @I2@ INDI
1 NAME Mary /Jones/
1 SEX F
1 FAMS @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
0 TRLR
`

func TestParseExtractsIndividuals(t *testing.T) {
	set := gedcom.Parse(sampleTree, "tree.ged")
	if set.Source != "tree.ged" {
		t.Fatalf("unexpected source %q", set.Source)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 individuals, got %d", set.Len())
	}

	john := set.Individuals[0]
	if john.ID != "I1" {
		t.Fatalf("expected id I1, got %q", john.ID)
	}
	if john.FullName != "John Smith" || john.GivenNames != "John" || john.Surname != "Smith" {
		t.Fatalf("unexpected name parts: %#v", john)
	}
	if john.BirthDate != "12 JAN 1900" {
		t.Fatalf("birth date = %q, want %q", john.BirthDate, "12 JAN 1900")
	}
	if john.BirthPlace != "Boston" {
		t.Fatalf("birth place = %q, want Boston", john.BirthPlace)
	}
	if john.DeathDate != "1970" || john.DeathPlace != "" {
		t.Fatalf("unexpected death fields: %q / %q", john.DeathDate, john.DeathPlace)
	}
	if john.Sex != "M" {
		t.Fatalf("sex = %q, want M", john.Sex)
	}
	if !reflect.DeepEqual(john.SpouseFamilyRefs, []string{"F1"}) {
		t.Fatalf("spouse refs = %v", john.SpouseFamilyRefs)
	}
	if john.ChildFamilyRefs != nil {
		t.Fatalf("expected no child refs, got %v", john.ChildFamilyRefs)
	}
	if john.Notes != "First note; Secondary\nthird" {
		t.Fatalf("notes = %q", john.Notes)
	}

	mary := set.Individuals[1]
	if mary.BirthDate != "" || mary.BirthPlace != "" {
		t.Fatalf("expected absent birth fields, got %q / %q", mary.BirthDate, mary.BirthPlace)
	}
	if _, ok := mary.RawFields["HUSB"]; ok {
		t.Fatal("family record lines leaked into the preceding individual")
	}
}

func TestParseLevelTwoAttachesToMostRecentField(t *testing.T) {
	text := strings.Join([]string{
		"0 @I1@ INDI",
		"1 BIRT",
		"1 NAME Ann /Lee/",
		"1 DEAT",
		"2 DATE 1950",
		"1 BIRT",
		"2 DATE 1901",
	}, "\n")

	set := gedcom.Parse(text, "x")
	if set.Len() != 1 {
		t.Fatalf("expected 1 individual, got %d", set.Len())
	}
	person := set.Individuals[0]
	if person.DeathDate != "1950" {
		t.Fatalf("death date = %q, want 1950", person.DeathDate)
	}
	// Only the first BIRT is consulted and it carries no sub-fields.
	if person.BirthDate != "" {
		t.Fatalf("birth date = %q, want empty", person.BirthDate)
	}
	births := person.RawFields["BIRT"]
	if len(births) != 2 {
		t.Fatalf("expected 2 BIRT values, got %d", len(births))
	}
	if date, _ := births[1].Sub("DATE"); date != "1901" {
		t.Fatalf("second BIRT date = %q, want 1901", date)
	}
}

func TestParseSkipsMalformedLevels(t *testing.T) {
	text := "0 @I1@ INDI\nx NAME Bad /Line/\n-1 SEX M\n1 NAME Good /Line/\n1\n"
	set := gedcom.Parse(text, "x")
	if set.Len() != 1 {
		t.Fatalf("expected 1 individual, got %d", set.Len())
	}
	if set.Individuals[0].FullName != "Good Line" {
		t.Fatalf("unexpected name %q", set.Individuals[0].FullName)
	}
	if set.Individuals[0].Sex != "" {
		t.Fatalf("negative level line should be ignored, sex = %q", set.Individuals[0].Sex)
	}
	if set.Stats.MalformedLines != 3 {
		t.Fatalf("malformed lines = %d, want 3", set.Stats.MalformedLines)
	}
}

func TestParseNoIndividuals(t *testing.T) {
	set := gedcom.Parse("0 HEAD\n1 SOUR X\n1 NAME Orphan /Field/\n0 TRLR\n", "empty.ged")
	if set.Len() != 0 {
		t.Fatalf("expected no individuals, got %d", set.Len())
	}
	if set.Individuals == nil {
		t.Fatal("expected empty, non-nil slice")
	}
}

func TestParseEmptyIDIsExcluded(t *testing.T) {
	text := "0 @@ INDI\n1 NAME Ghost /Person/\n0 @I2@ INDI\n1 NAME Real /Person/\n"
	set := gedcom.Parse(text, "x")
	if set.Len() != 1 || set.Individuals[0].ID != "I2" {
		t.Fatalf("expected only I2, got %#v", set.Individuals)
	}
}

func TestParseAcceptsTagFirstMarker(t *testing.T) {
	set := gedcom.Parse("0 INDI @P7@\n1 NAME Solo\n", "x")
	if set.Len() != 1 {
		t.Fatalf("expected 1 individual, got %d", set.Len())
	}
	person := set.Individuals[0]
	if person.ID != "P7" || person.FullName != "Solo" || person.Surname != "" {
		t.Fatalf("unexpected person %#v", person)
	}
}

func TestParseDropsDuplicateIDs(t *testing.T) {
	text := "0 @I1@ INDI\n1 NAME First /One/\n0 @I1@ INDI\n1 NAME Second /One/\n"
	set := gedcom.Parse(text, "x")
	if set.Len() != 1 {
		t.Fatalf("expected 1 individual, got %d", set.Len())
	}
	if set.Individuals[0].GivenNames != "First" {
		t.Fatalf("expected first occurrence to win, got %q", set.Individuals[0].GivenNames)
	}
	if set.Stats.DuplicateIDs != 1 {
		t.Fatalf("duplicate ids = %d, want 1", set.Stats.DuplicateIDs)
	}
}

func TestParseHandlesCRLF(t *testing.T) {
	text := "0 @I1@ INDI\r\n1 NAME Carl /Berg/\r\n1 BIRT\r\n2 DATE 1888\r\n"
	set := gedcom.Parse(text, "x")
	if set.Len() != 1 || set.Individuals[0].BirthDate != "1888" {
		t.Fatalf("unexpected parse result %#v", set.Individuals)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	first := gedcom.Parse(sampleTree, "tree.ged")
	second := gedcom.Parse(sampleTree, "tree.ged")
	if !reflect.DeepEqual(first, second) {
		t.Fatal("parsing the same input twice produced different record sets")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		person gedcom.Individual
		want   string
	}{
		{"with birth", gedcom.Individual{FullName: "John Smith", BirthDate: "1900"}, "John Smith (b. 1900)"},
		{"without birth", gedcom.Individual{FullName: "John Smith"}, "John Smith"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordSetFind(t *testing.T) {
	set := gedcom.Parse(sampleTree, "tree.ged")
	if p, ok := set.Find("I2"); !ok || p.FullName != "Mary Jones" {
		t.Fatalf("Find(I2) = %#v, %v", p, ok)
	}
	if _, ok := set.Find("missing"); ok {
		t.Fatal("expected missing id to be absent")
	}
}
