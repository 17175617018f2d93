// Package synteny holds the family/threshold/gap-walk machinery shared by
// micro-synteny search (C8) and macro fan-out candidate selection (C10),
// the latter reusing the same greedy gap walk as C8.
package synteny

// Threshold carries the overloaded matched/intermediate convention: a
// value >= 1 is an absolute count (or gap), a value in (0, 1) is a
// fraction of a reference length (len(query) for `matched`, the same for
// the intermediate gap bound in micro-synteny/candidate-selection mode).
type Threshold float64

// Fractional reports whether t should be interpreted as a fraction of a
// reference length rather than an absolute count.
func (t Threshold) Fractional() bool {
	return t > 0 && t < 1
}

// MatchedOK reports whether count (the number of matches gathered so far)
// satisfies t against a query of length n.
func (t Threshold) MatchedOK(count, n int) bool {
	if t.Fractional() {
		return float64(count) >= float64(t)*float64(n)
	}
	return float64(count) >= float64(t)
}

// GapOK reports whether gap (the distance between two successive matches
// along the target) satisfies the intermediate bound t against a query of
// length n.
func (t Threshold) GapOK(gap, n int) bool {
	if t.Fractional() {
		return float64(gap)/float64(n) <= float64(t)
	}
	return float64(gap) <= float64(t)-1
}
