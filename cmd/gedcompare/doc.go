// Package main hosts the gedcompare CLI.
//
// The Cobra command tree loads two GEDCOM files, runs the automatic matcher,
// and lets the user review and adjust the result across invocations by
// persisting sessions in the configured store. Configuration resolution,
// logger construction, and store selection live in commandContext so each
// command only deals with parsing flags and rendering output.
//
// Comparison logic belongs in internal/matching and internal/session; this
// package should only translate between terminal input and those packages.
package main
