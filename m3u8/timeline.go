package m3u8

/*
 This file places segments on the media timeline and records loaded ones.
*/

import (
	"errors"
	"fmt"
	"math"

	"github.com/mogiioin/hls-ranges/ranges"
)

var ErrSegmentNotFound = errors.New("segment not in playlist")
var ErrGapSegment = errors.New("segment is marked as gap")
var ErrInvalidDuration = errors.New("segment duration is negative or not finite")

// validDuration is false for NaN, infinite and negative durations.
func validDuration(d float64) bool {
	return d >= 0 && !math.IsInf(d, 1)
}

// Bitrate returns the BANDWIDTH of the variant as a range bitrate.
func (v *Variant) Bitrate() ranges.Bitrate {
	return ranges.Bitrate(v.Bandwidth)
}

// VariantByBitrate returns the variant with the given BANDWIDTH, or nil.
func (p *MasterPlaylist) VariantByBitrate(bitrate ranges.Bitrate) *Variant {
	for _, v := range p.Variants {
		if v.Bitrate() == bitrate {
			return v
		}
	}
	return nil
}

// TotalDuration returns the sum of all segment durations.
func (p *MediaPlaylist) TotalDuration() float64 {
	var total float64
	for _, s := range p.Segments {
		total += s.Duration
	}
	return total
}

// Timeline returns the span covered by every segment, in playlist order.
// Segments follow each other from StartOffset without holes.
func (p *MediaPlaylist) Timeline() ranges.TimeRanges {
	out := make(ranges.TimeRanges, 0, len(p.Segments))
	start := p.StartOffset
	for _, s := range p.Segments {
		out = append(out, ranges.TimeRange{Start: start, End: start + s.Duration})
		start += s.Duration
	}
	return out
}

// SegmentRange returns the span of the segment with sequence number seqID.
func (p *MediaPlaylist) SegmentRange(seqID uint64) (ranges.TimeRange, bool) {
	if seqID < p.SeqNo || seqID-p.SeqNo >= uint64(len(p.Segments)) {
		return ranges.TimeRange{}, false
	}
	idx := int(seqID - p.SeqNo)
	start := p.StartOffset
	for _, s := range p.Segments[:idx] {
		start += s.Duration
	}
	return ranges.TimeRange{Start: start, End: start + p.Segments[idx].Duration}, true
}

// SegmentAt returns the segment playing at position t, or nil.
func (p *MediaPlaylist) SegmentAt(t float64) *MediaSegment {
	timeline := p.Timeline()
	for i, tr := range timeline {
		if tr.Start <= t && t < tr.End {
			return p.Segments[i]
		}
	}
	return nil
}

// LoadSegment records in rs that the segment seqID has been loaded at bitrate.
// The segment and every segment before it must have a valid duration, as
// relaxed decoding keeps whatever EXTINF held.
func (p *MediaPlaylist) LoadSegment(rs *ranges.RangeSet, bitrate ranges.Bitrate, seqID uint64) error {
	tr, ok := p.SegmentRange(seqID)
	if !ok {
		return fmt.Errorf("segment %d: %w", seqID, ErrSegmentNotFound)
	}
	if p.Segments[seqID-p.SeqNo].Gap {
		return fmt.Errorf("segment %d: %w", seqID, ErrGapSegment)
	}
	if !validDuration(tr.Start-p.StartOffset) || !validDuration(tr.End-tr.Start) {
		return fmt.Errorf("segment %d: %w", seqID, ErrInvalidDuration)
	}
	return rs.Insert(bitrate, tr.Start, tr.End)
}
