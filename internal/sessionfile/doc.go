// Package sessionfile stores comparison sessions as a JSON array in
// <data_dir>/sessions.json.
//
// Writers hold an exclusive flock on sessions.json.lock and replace the file
// through a temp-file rename. Readers take a shared lock when they can get
// one. A file that is not a JSON array reads as empty; the next write moves
// it to sessions.json.corrupt before writing a fresh array.
package sessionfile
