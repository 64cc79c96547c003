package ranges

/*
 This file defines queries working on any Ranges collection.
*/

import "math"

// GetRange returns the last range whose start is at or before ts, or nil if
// ts is before all ranges.
//
// The end of the range is not checked. If ts is in a hole after a range, that
// range is still returned, and GetGap gives a negative value for ts.
func GetRange(ts float64, r Ranges) *TimeRange {
	for i := r.Len() - 1; i >= 0; i-- {
		if start := r.Start(i); ts >= start {
			return &TimeRange{Start: start, End: r.End(i)}
		}
	}
	return nil
}

// GetGap returns the buffered time left after ts, end - ts, in the range
// found by GetRange. It is +Inf if there is no such range.
func GetGap(ts float64, r Ranges) float64 {
	return GetRange(ts, r).Gap(ts)
}

// GetLoaded returns the time buffered before ts, ts - start, in the range
// found by GetRange. It is 0 if there is no such range.
func GetLoaded(ts float64, r Ranges) float64 {
	return GetRange(ts, r).Loaded(ts)
}

// GetSize returns the length of the range found by GetRange, or 0.
func GetSize(ts float64, r Ranges) float64 {
	return GetRange(ts, r).Size()
}

// GetNextRangeGap returns the time from ts to the start of the first range
// starting after ts. It is +Inf if no range starts after ts.
func GetNextRangeGap(ts float64, r Ranges) float64 {
	for i := 0; i < r.Len(); i++ {
		if start := r.Start(i); start > ts {
			return start - ts
		}
	}
	return math.Inf(1)
}

// Gap returns End - ts, or +Inf for a nil range.
func (tr *TimeRange) Gap(ts float64) float64 {
	if tr == nil {
		return math.Inf(1)
	}
	return tr.End - ts
}

// Loaded returns ts - Start, or 0 for a nil range.
func (tr *TimeRange) Loaded(ts float64) float64 {
	if tr == nil {
		return 0
	}
	return ts - tr.Start
}

// Size returns End - Start, or 0 for a nil range.
func (tr *TimeRange) Size() float64 {
	if tr == nil {
		return 0
	}
	return tr.End - tr.Start
}
