package ranges

import "math"

// Epsilon is the tolerance used for every comparison of timestamps.
// Timestamps are computed from segment durations and media sample times,
// so exact equality of two float64 values can not be relied upon.
const Epsilon = 1e-5

// NearlyEqual reports whether a and b are within Epsilon of each other.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// NearlyLessOrEqual reports whether a is before or at b, within Epsilon.
func NearlyLessOrEqual(a, b float64) bool {
	return a-b <= Epsilon
}

func isBefore(a, b Range) bool {
	return NearlyLessOrEqual(a.End, b.Start)
}

// areOverlapping is false for ranges that only touch within Epsilon,
// those are contiguous.
func areOverlapping(a, b Range) bool {
	return !NearlyLessOrEqual(a.End, b.Start) && !NearlyLessOrEqual(b.End, a.Start)
}

func areContiguous(a, b Range) bool {
	return NearlyEqual(b.Start, a.End) || NearlyEqual(b.End, a.Start)
}

// isContainedInto reports whether inner lies entirely within outer.
func isContainedInto(inner, outer Range) bool {
	return NearlyLessOrEqual(outer.Start, inner.Start) && NearlyLessOrEqual(inner.End, outer.End)
}
