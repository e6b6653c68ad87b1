// Package textutil provides text processing utilities for name similarity and
// filename sanitization.
//
// The primary use cases are:
//   - Scoring how alike two display names are on a 0..1 scale
//   - Sanitizing filenames and path segments for safe filesystem use
//
// Similarity is derived from the Levenshtein edit distance between the two
// strings, counted in runes and compared case-sensitively, normalized by the
// length of the longer string.
package textutil
