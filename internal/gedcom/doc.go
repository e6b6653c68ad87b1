// Package gedcom turns line-oriented GEDCOM text into typed individual records.
//
// Parsing is tolerant and best-effort: lines with a malformed level are
// skipped, records without an individual marker are never emitted, and
// unrecognized tags are preserved in Individual.RawFields so nothing in the
// source is silently lost. Level-2 lines are stored as sub-annotations on the
// level-1 Field they follow, which is how event dates and places are
// extracted without a full tree.
//
// The package performs no I/O. Callers that read files, decode character sets,
// or need to report "no individuals found" should go through gedfile.
package gedcom
