// Package sessiondb stores comparison sessions in SQLite.
//
// Each session is one row in <data_dir>/sessions.db holding the session
// document as JSON next to a few indexed columns. The database runs in WAL
// mode with a busy timeout, and writes retry with backoff while another
// process holds the lock. The table layout is embedded and its number is kept
// in the SQLite user_version header; opening a file stamped with another
// layout returns ErrSchemaMismatch.
package sessiondb
