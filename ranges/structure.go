package ranges

/*
 This file defines data structures related to package.
*/

import "errors"

var ErrInvertedRange = errors.New("range start is after its end")
var ErrNegativeStart = errors.New("range start is negative")
var ErrEmptyRange = errors.New("range is empty")

// Bitrate identifies the quality level data was loaded at.
// It is opaque to the package and only compared for equality.
// The HLS BANDWIDTH attribute of a variant is a natural value.
type Bitrate uint32

// Ranges is implemented by any ordered collection of time ranges.
// Start and End must be valid for 0 <= i < Len().
type Ranges interface {
	Len() int
	Start(i int) float64
	End(i int) float64
}

// TimeRange is a plain span of the media timeline in seconds.
type TimeRange struct {
	Start float64 // Start of the span, inclusive
	End   float64 // End of the span, exclusive
}

// Range is a span of the media timeline loaded at a given bitrate.
type Range struct {
	Start   float64 // Start of the span in seconds, inclusive
	End     float64 // End of the span in seconds, exclusive
	Bitrate Bitrate // Bitrate the data of the span was loaded at
}

// TimeRanges adapts a slice of spans, for instance a buffered report taken
// from a platform media element, to the Ranges interface.
// The slice must be ordered and non-overlapping.
type TimeRanges []TimeRange

// RangeSet records the buffered ranges of one track.
// The zero value is an empty set ready to use.
type RangeSet struct {
	// Strict enables validation of Insert arguments beyond start <= end:
	// start must not be negative and the range must not be empty.
	Strict bool
	ranges []Range // ordered, non-overlapping, maximally merged
}

// Tracks keeps one RangeSet per named track, e.g. "audio" and "video".
// The zero value is ready to use.
type Tracks struct {
	Strict bool // Strict is applied to every RangeSet created by Track
	sets   map[string]*RangeSet
}
