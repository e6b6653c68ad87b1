// Package logging assembles structured slog loggers for gedcompare.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// standard attribute keys (component, session_id, side, source_file). Loggers built
// from config write to stderr in the configured format and mirror every record
// at debug level into <log_dir>/gedcompare.log as JSON. NewNop serves tests
// and wiring code that cannot fail.
package logging
