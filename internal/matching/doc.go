// Package matching links individuals across two record sets and describes
// how matched pairs differ.
//
// AutoMatch is a greedy first-fit pass: each left person, in input order,
// takes the first not-yet-used right person that LikelySamePerson accepts.
// There is no backtracking and no global optimization, so the result depends
// only on input order. Manual edits go through AddManualMatch and RemoveMatch,
// which return new slices and keep the relation one-to-one on both sides.
//
// Difference strings are computed when a match is created and stored with
// it; they are not re-derived later.
package matching
