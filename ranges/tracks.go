package ranges

import "slices"

// Track returns the range set of the named track, creating it if needed.
func (t *Tracks) Track(name string) *RangeSet {
	if t.sets == nil {
		t.sets = make(map[string]*RangeSet)
	}
	s, ok := t.sets[name]
	if !ok {
		s = &RangeSet{Strict: t.Strict}
		t.sets[name] = s
	}
	return s
}

// Names returns the track names in sorted order.
func (t *Tracks) Names() []string {
	names := make([]string, 0, len(t.sets))
	for name := range t.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Playable returns the part of the timeline buffered in every track.
// Bitrates are those of the first track in name order.
// With no tracks the result is empty.
//
// Contrary to RangeSet.Intersect, a range overlapping several ranges of
// another track is split into every overlap.
func (t *Tracks) Playable() *RangeSet {
	names := t.Names()
	if len(names) == 0 {
		return New()
	}
	out := t.sets[names[0]].Clone()
	for _, name := range names[1:] {
		out.ranges = overlaps(out.ranges, t.sets[name])
		out.normalize()
	}
	return out
}

// overlaps walks both ordered collections once and returns every common part.
func overlaps(a []Range, b Ranges) []Range {
	var out []Range
	i, j := 0, 0
	for i < len(a) && j < b.Len() {
		start := max(a[i].Start, b.Start(j))
		end := min(a[i].End, b.End(j))
		if start < end {
			out = append(out, Range{Start: start, End: end, Bitrate: a[i].Bitrate})
		}
		if a[i].End < b.End(j) {
			i++
		} else {
			j++
		}
	}
	return out
}
