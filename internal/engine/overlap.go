package engine

// Overlaps reports whether two half-open intervals on the same classroom and
// date intersect. Touching endpoints do not count: a lesson ending at 10:00
// never collides with one starting at 10:00. The predicate is commutative.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
