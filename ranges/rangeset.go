package ranges

/*
 This file defines the buffered range set and its mutations.
*/

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
)

// New creates a new empty range set.
func New() *RangeSet {
	return new(RangeSet)
}

// FromRanges creates a range set from a foreign collection, for instance the
// buffered report of a media element. All spans get the same bitrate.
func FromRanges(src Ranges, bitrate Bitrate) (*RangeSet, error) {
	s := New()
	for i := 0; i < src.Len(); i++ {
		if err := s.Insert(bitrate, src.Start(i), src.End(i)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of ranges.
func (s *RangeSet) Len() int {
	return len(s.ranges)
}

// Start returns the start of range i.
func (s *RangeSet) Start(i int) float64 {
	return s.ranges[i].Start
}

// End returns the end of range i.
func (s *RangeSet) End(i int) float64 {
	return s.ranges[i].End
}

// Bitrate returns the bitrate of range i.
func (s *RangeSet) Bitrate(i int) Bitrate {
	return s.ranges[i].Bitrate
}

// Ranges returns a copy of the ranges in timeline order.
func (s *RangeSet) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Reset removes all ranges.
func (s *RangeSet) Reset() {
	s.ranges = s.ranges[:0]
}

// Clone returns an independent copy of the set.
func (s *RangeSet) Clone() *RangeSet {
	return &RangeSet{Strict: s.Strict, ranges: slices.Clone(s.ranges)}
}

// Equal reports whether both sets hold the same ranges, bounds compared within Epsilon.
func (s *RangeSet) Equal(other *RangeSet) bool {
	return slices.EqualFunc(s.ranges, other.ranges, func(a, b Range) bool {
		return a.Bitrate == b.Bitrate && NearlyEqual(a.Start, b.Start) && NearlyEqual(a.End, b.End)
	})
}

// Insert records that the span [start, end) has been loaded at bitrate.
//
// The new span takes priority over what is already there. Overlapped ranges
// of another bitrate are trimmed to abut it, split around it or removed when
// fully covered. Overlapping or contiguous ranges of the same bitrate are
// merged with it.
//
// It returns ErrInvertedRange if start > end. An empty span is ignored.
// If Strict is set, a negative start gives ErrNegativeStart and a span
// without positive length, e.g. with NaN bounds, gives ErrEmptyRange.
// Otherwise such a span is ignored too.
// The set is left untouched on error.
func (s *RangeSet) Insert(bitrate Bitrate, start, end float64) error {
	if start > end {
		return fmt.Errorf("insert [%g, %g): %w", start, end, ErrInvertedRange)
	}
	if start == end {
		return nil
	}
	if s.Strict {
		if start < 0 {
			return fmt.Errorf("insert [%g, %g): %w", start, end, ErrNegativeStart)
		}
		if !(end-start > 0) {
			return fmt.Errorf("insert [%g, %g): %w", start, end, ErrEmptyRange)
		}
	}
	if !(end-start > 0) {
		return nil
	}

	added := Range{Start: start, End: end, Bitrate: bitrate}

	// i is the position being inspected. It is left unchanged when the range
	// at i is deleted, so the next range slides into the same position.
	i := 0
scan:
	for i < len(s.ranges) {
		r := &s.ranges[i]
		overlapping := areOverlapping(added, *r)
		contiguous := areContiguous(added, *r)

		switch {
		case (overlapping || contiguous) && r.Bitrate == added.Bitrate:
			added.Start = min(added.Start, r.Start)
			added.End = max(added.End, r.End)
			s.ranges = slices.Delete(s.ranges, i, i+1)
		case overlapping && isContainedInto(added, *r):
			right := Range{Start: added.End, End: r.End, Bitrate: r.Bitrate}
			r.End = min(r.End, added.Start)
			i++
			// The scan goes on, added may still reach the next range by up to Epsilon.
			if !NearlyLessOrEqual(right.End, right.Start) {
				s.ranges = slices.Insert(s.ranges, i, right)
			}
		case overlapping && isContainedInto(*r, added):
			s.ranges = slices.Delete(s.ranges, i, i+1)
		case overlapping && r.Start < added.Start:
			r.End = min(r.End, added.Start)
			i++
		case overlapping:
			r.Start = max(r.Start, added.End)
			break scan
		case contiguous:
			// Different bitrates meet here, the boundary stays.
			if NearlyLessOrEqual(added.End, r.Start) {
				break scan
			}
			i++
		default:
			if isBefore(added, *r) && (i == 0 || isBefore(s.ranges[i-1], added)) {
				break scan
			}
			i++
		}
	}

	s.ranges = slices.Insert(s.ranges, i, added)
	s.normalize()
	return nil
}

// Intersect keeps only the parts of the set also covered by others, which
// must be ordered and non-overlapping. Each range is clamped to the first
// range of others it overlaps, or removed if there is none. Bitrates are
// kept. It returns a copy of the resulting ranges.
func (s *RangeSet) Intersect(others Ranges) []Range {
	kept := s.ranges[:0]
	for _, r := range s.ranges {
		o, ok := firstOverlap(r, others)
		if !ok {
			continue
		}
		if o.Start > r.Start {
			r.Start = o.Start
		}
		if o.End < r.End {
			r.End = o.End
		}
		kept = append(kept, r)
	}
	s.ranges = kept
	s.normalize()
	return s.Ranges()
}

// Remove evicts the span [start, end) from the set. Ranges are trimmed or
// split at the span boundaries.
func (s *RangeSet) Remove(start, end float64) error {
	if start > end {
		return fmt.Errorf("remove [%g, %g): %w", start, end, ErrInvertedRange)
	}
	if start == end {
		return nil
	}
	cut := Range{Start: start, End: end}
	out := make([]Range, 0, len(s.ranges)+1)
	for _, r := range s.ranges {
		if !areOverlapping(r, cut) {
			out = append(out, r)
			continue
		}
		if r.Start < start {
			out = append(out, Range{Start: r.Start, End: start, Bitrate: r.Bitrate})
		}
		if r.End > end {
			out = append(out, Range{Start: end, End: r.End, Bitrate: r.Bitrate})
		}
	}
	s.ranges = out
	s.normalize()
	return nil
}

// HasRange reports whether [startTime, startTime+duration] is entirely buffered
// within a single range.
func (s *RangeSet) HasRange(startTime, duration float64) bool {
	return s.FindRange(startTime, duration) != nil
}

// FindRange returns the range covering [startTime, startTime+duration], or nil.
// The result is a copy and is not updated by later mutations.
func (s *RangeSet) FindRange(startTime, duration float64) *Range {
	end := startTime + duration
	for _, r := range s.ranges {
		if NearlyLessOrEqual(r.Start, startTime) && NearlyLessOrEqual(end, r.End) {
			return &r
		}
	}
	return nil
}

// RangeAt returns the range with start <= t < end, or nil.
// Unlike GetRange it never returns a range that ends before t.
// The result is a copy and is not updated by later mutations.
func (s *RangeSet) RangeAt(t float64) *Range {
	for _, r := range s.ranges {
		if r.Start <= t && t < r.End {
			return &r
		}
	}
	return nil
}

// Gap is GetGap applied to the set.
func (s *RangeSet) Gap(ts float64) float64 {
	return GetGap(ts, s)
}

// Loaded is GetLoaded applied to the set.
func (s *RangeSet) Loaded(ts float64) float64 {
	return GetLoaded(ts, s)
}

// Size is GetSize applied to the set.
func (s *RangeSet) Size(ts float64) float64 {
	return GetSize(ts, s)
}

// NextRangeGap is GetNextRangeGap applied to the set.
func (s *RangeSet) NextRangeGap(ts float64) float64 {
	return GetNextRangeGap(ts, s)
}

// String returns the ranges as [start-end@bitrate ...].
func (s *RangeSet) String() string {
	var buf bytes.Buffer
	buf.WriteRune('[')
	for i, r := range s.ranges {
		if i > 0 {
			buf.WriteRune(' ')
		}
		buf.WriteString(r.String())
	}
	buf.WriteRune(']')
	return buf.String()
}

// String returns the range as start-end@bitrate with millisecond precision.
func (r Range) String() string {
	return strconv.FormatFloat(r.Start, 'f', 3, 64) + "-" +
		strconv.FormatFloat(r.End, 'f', 3, 64) + "@" +
		strconv.FormatUint(uint64(r.Bitrate), 10)
}

// normalize drops ranges left without length by trimming, then merges
// contiguous neighbours of the same bitrate. Trimming can expose such a pair
// after the insertion scan has passed it.
func (s *RangeSet) normalize() {
	s.ranges = slices.DeleteFunc(s.ranges, func(r Range) bool {
		return NearlyLessOrEqual(r.End, r.Start)
	})
	if len(s.ranges) < 2 {
		return
	}
	merged := s.ranges[:1]
	for _, r := range s.ranges[1:] {
		last := &merged[len(merged)-1]
		if last.Bitrate == r.Bitrate && NearlyEqual(last.End, r.Start) {
			last.End = max(last.End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	s.ranges = merged
}

// firstOverlap returns the first range of others sharing more than Epsilon with r.
func firstOverlap(r Range, others Ranges) (TimeRange, bool) {
	for j := 0; j < others.Len(); j++ {
		o := Range{Start: others.Start(j), End: others.End(j)}
		if areOverlapping(r, o) {
			return TimeRange{Start: o.Start, End: o.End}, true
		}
	}
	return TimeRange{}, false
}
