// Package gedfile loads GEDCOM files from disk.
//
// It owns everything gedcom.Parse leaves to the caller: reading the file,
// choosing a character set, decoding to UTF-8, and rejecting files that yield
// no individuals. Character sets are chosen in this order: a byte order mark,
// then a forced encoding from configuration, then the header CHAR line.
package gedfile
