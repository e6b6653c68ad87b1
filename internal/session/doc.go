// Package session holds the aggregate for one comparison: both people
// snapshots and the current match set.
//
// Session values are copy-on-write. Match, Unmatch and ResetToAutomatic
// return a new Session; people snapshots are shared and never modified.
// Persistence lives behind the Store interface, implemented by sessiondb
// (SQLite) and sessionfile (a JSON array file). Both stores write the same
// document produced by Marshal.
package session
