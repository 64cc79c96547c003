/*
Package ranges tracks which parts of a media timeline have been buffered and
at which bitrate.

An adaptive streaming player downloads segments of the same presentation at
different quality levels. Every downloaded segment covers a span of the
timeline, in seconds, and the player needs to know what is buffered ahead of
the play position, where the next hole is, and which region is playable once
audio and video are considered together.

## Structure and design of the code

The central type is RangeSet. It owns an ordered list of non-overlapping
ranges, each tagged with a Bitrate. Two invariants hold after every mutation:

  - ranges are ordered by start and do not overlap, within Epsilon
  - two neighbouring ranges with the same bitrate never touch; they are merged

Data enters the set through Insert. A new range has priority over the data
already present: ranges of a different bitrate are trimmed, split or removed
to make room, ranges of the same bitrate are merged into it. Intersect reduces
the set to the coverage of another collection, which is how the buffered
spans of two independent tracks are combined. Tracks does this for any number
of named tracks.

All comparisons of timestamps go through NearlyEqual and NearlyLessOrEqual,
since timestamps come out of floating point arithmetic.

Queries work on anything implementing the Ranges interface, not only on a
RangeSet. A platform buffered report can be wrapped in TimeRanges and handed
to GetGap, GetLoaded, GetSize or GetNextRangeGap. Note that GetRange, unlike
RangeSet.RangeAt, returns the closest range starting at or before a position
even when the position lies after its end. GetGap then reports a negative
value, which tells that the position is past the nearest buffered data.

A RangeSet is not safe for concurrent use.

Example of usage, without error handling:

	rs := ranges.New()
	_ = rs.Insert(800000, 0, 10)
	_ = rs.Insert(1600000, 4, 12)
	fmt.Println(rs)                   // [0.000-4.000@800000 4.000-12.000@1600000]
	fmt.Println(ranges.GetGap(6, rs)) // 6
*/
package ranges
