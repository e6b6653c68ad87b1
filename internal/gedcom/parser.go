package gedcom

import (
	"strconv"
	"strings"
)

const (
	tagIndividual = "INDI"
	tagName       = "NAME"
	tagBirth      = "BIRT"
	tagDeath      = "DEAT"
	tagSex        = "SEX"
	tagSpouseFam  = "FAMS"
	tagChildFam   = "FAMC"
	tagNote       = "NOTE"
	tagDate       = "DATE"
	tagPlace      = "PLAC"
	tagConcat     = "CONC"
	tagContinue   = "CONT"

	notesSeparator = "; "
)

// line is one tokenized input line.
type line struct {
	level int
	tag   string
	xref  string
	value string
}

// recordBuilder accumulates the fields of the individual currently open.
type recordBuilder struct {
	id      string
	fields  map[string][]Field
	lastTag string
	lastIdx int
}

func newRecordBuilder(id string) *recordBuilder {
	return &recordBuilder{id: id, fields: make(map[string][]Field), lastIdx: -1}
}

func (b *recordBuilder) addField(tag, value string) {
	b.fields[tag] = append(b.fields[tag], Field{Value: value})
	b.lastTag = tag
	b.lastIdx = len(b.fields[tag]) - 1
}

// addSub attaches a level-2 annotation to the most recently added level-1 field.
func (b *recordBuilder) addSub(tag, value string) {
	if b.lastIdx < 0 {
		return
	}
	values := b.fields[b.lastTag]
	values[b.lastIdx].Subs = append(values[b.lastIdx].Subs, SubField{Tag: tag, Value: value})
}

// Parse converts GEDCOM text into a RecordSet labelled with source.
func Parse(text, source string) RecordSet {
	set := RecordSet{Source: source, Individuals: []Individual{}}
	seen := make(map[string]struct{})

	var current *recordBuilder
	finalize := func() {
		if current == nil {
			return
		}
		if _, dup := seen[current.id]; dup {
			set.Stats.DuplicateIDs++
		} else {
			seen[current.id] = struct{}{}
			set.Individuals = append(set.Individuals, current.build())
		}
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		set.Stats.Lines++

		ln, ok := tokenize(trimmed)
		if !ok {
			set.Stats.MalformedLines++
			continue
		}

		switch ln.level {
		case 0:
			finalize()
			if id, ok := individualID(ln); ok && id != "" {
				current = newRecordBuilder(id)
			}
		case 1:
			if current != nil {
				current.addField(ln.tag, ln.value)
			}
		case 2:
			if current != nil {
				current.addSub(ln.tag, ln.value)
			}
		}
	}
	finalize()

	return set
}

// tokenize splits a trimmed line into level, tag and value. An optional xref
// between level and tag ("0 @I1@ INDI") is captured separately.
func tokenize(text string) (line, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return line{}, false
	}
	level, err := strconv.Atoi(parts[0])
	if err != nil || level < 0 {
		return line{}, false
	}
	ln := line{level: level, tag: parts[1], value: strings.Join(parts[2:], " ")}
	if level == 0 && isXref(parts[1]) && len(parts) > 2 {
		ln.xref = parts[1]
		ln.tag = parts[2]
		ln.value = strings.Join(parts[3:], " ")
	}
	return ln, true
}

func isXref(token string) bool {
	return len(token) > 1 && strings.HasPrefix(token, "@")
}

// individualID reports whether a level-0 line opens an individual and returns
// its identifier with delimiters stripped. Both "0 @I1@ INDI" and
// "0 INDI @I1@" are accepted.
func individualID(ln line) (string, bool) {
	if ln.tag != tagIndividual {
		return "", false
	}
	if ln.xref != "" {
		return stripDelimiters(ln.xref), true
	}
	return stripDelimiters(ln.value), true
}

func stripDelimiters(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "@", ""))
}

func (b *recordBuilder) build() Individual {
	given, surname := splitName(b.first(tagName).Value)
	birth := b.first(tagBirth)
	death := b.first(tagDeath)

	person := Individual{
		ID:               b.id,
		FullName:         strings.TrimSpace(given + " " + surname),
		GivenNames:       given,
		Surname:          surname,
		Sex:              strings.TrimSpace(b.first(tagSex).Value),
		SpouseFamilyRefs: b.refs(tagSpouseFam),
		ChildFamilyRefs:  b.refs(tagChildFam),
		Notes:            b.notes(),
		RawFields:        b.fields,
	}
	person.BirthDate, _ = birth.Sub(tagDate)
	person.BirthPlace, _ = birth.Sub(tagPlace)
	person.DeathDate, _ = death.Sub(tagDate)
	person.DeathPlace, _ = death.Sub(tagPlace)
	if len(person.RawFields) == 0 {
		person.RawFields = nil
	}
	return person
}

func (b *recordBuilder) first(tag string) Field {
	if values := b.fields[tag]; len(values) > 0 {
		return values[0]
	}
	return Field{}
}

func (b *recordBuilder) refs(tag string) []string {
	values := b.fields[tag]
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, field := range values {
		if ref := stripDelimiters(field.Value); ref != "" {
			out = append(out, ref)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// notes joins every NOTE value, folding CONC/CONT continuation lines into the
// note they belong to.
func (b *recordBuilder) notes() string {
	values := b.fields[tagNote]
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, field := range values {
		var sb strings.Builder
		sb.WriteString(field.Value)
		for _, sub := range field.Subs {
			switch sub.Tag {
			case tagConcat:
				sb.WriteString(sub.Value)
			case tagContinue:
				sb.WriteByte('\n')
				sb.WriteString(sub.Value)
			}
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, notesSeparator)
}
