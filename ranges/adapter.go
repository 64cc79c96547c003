package ranges

import "slices"

// Len returns the number of spans.
func (t TimeRanges) Len() int {
	return len(t)
}

// Start returns the start of span i.
func (t TimeRanges) Start(i int) float64 {
	return t[i].Start
}

// End returns the end of span i.
func (t TimeRanges) End(i int) float64 {
	return t[i].End
}

// IsRanges reports whether x is a usable Ranges collection.
// A nil interface or a nil *RangeSet is not.
func IsRanges(x any) bool {
	r, ok := x.(Ranges)
	if !ok || r == nil {
		return false
	}
	if s, ok := r.(*RangeSet); ok && s == nil {
		return false
	}
	return true
}

// BufferedToArray returns the spans of r as a new slice, without bitrates.
// The result never shares memory with r.
func BufferedToArray(r Ranges) []TimeRange {
	switch v := r.(type) {
	case *RangeSet:
		out := make([]TimeRange, len(v.ranges))
		for i, rng := range v.ranges {
			out[i] = TimeRange{Start: rng.Start, End: rng.End}
		}
		return out
	case TimeRanges:
		return slices.Clone([]TimeRange(v))
	}
	out := make([]TimeRange, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		out = append(out, TimeRange{Start: r.Start(i), End: r.End(i)})
	}
	return out
}

// Resolve returns the range to use for ts from x, which is either a Ranges
// collection, searched with GetRange, or a single range already resolved by
// the caller. It returns nil for anything else.
func Resolve(ts float64, x any) *TimeRange {
	if IsRanges(x) {
		return GetRange(ts, x.(Ranges))
	}
	switch v := x.(type) {
	case TimeRange:
		return &v
	case *TimeRange:
		return v
	case Range:
		return &TimeRange{Start: v.Start, End: v.End}
	case *Range:
		if v != nil {
			return &TimeRange{Start: v.Start, End: v.End}
		}
	}
	return nil
}
