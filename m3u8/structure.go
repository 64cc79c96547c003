package m3u8

/*
 This file defines data structures related to package.
*/

import (
	"bytes"
	"io"
)

// Playlist interface applied to various playlist types.
type Playlist interface {
	Encode() *bytes.Buffer
	Decode(bytes.Buffer, bool) error
	DecodeFrom(reader io.Reader, strict bool) error
	String() string
	CalcMinVersion() (ver uint8, reason string)
}

// ListType is type of playlist.
type ListType uint

const (
	// use 0 for undefined type
	MASTER ListType = iota + 1
	MEDIA
)

// MediaType is EXT-X-PLAYLIST-TYPE tag
type MediaType uint

const (
	// use 0 for undefined
	EVENT MediaType = iota + 1
	VOD
)

// MediaPlaylist represents a single bitrate playlist aka media playlist.
// Only the tags needed to place segments on the media timeline are kept.
type MediaPlaylist struct {
	TargetDuration   uint            // EXT-X-TARGETDURATION
	SeqNo            uint64          // EXT-X-MEDIA-SEQUENCE
	DiscontinuitySeq uint64          // EXT-X-DISCONTINUITY-SEQUENCE
	Segments         []*MediaSegment // List of segments in playlist order
	StartOffset      float64         // Timeline position of the first segment, in seconds
	Closed           bool            // EXT-X-ENDLIST seen, the playlist will not grow
	MediaType        MediaType       // EXT-X-PLAYLIST-TYPE (EVENT, VOD or empty)
}

// MasterPlaylist represents a master (multivariant) playlist which
// lists the media playlists of the available bitrates.
type MasterPlaylist struct {
	Variants []*Variant // Variants is a list of media playlists
}

// Variant structure represents media playlist variants in master playlists.
type Variant struct {
	URI string // URI is the path to the media playlist.
	VariantParams
}

// VariantParams represents the EXT-X-STREAM-INF parameters of a Variant.
type VariantParams struct {
	Bandwidth        uint32 // BANDWIDTH parameter
	AverageBandwidth uint32 // AVERAGE-BANDWIDTH parameter
	Codecs           string // CODECS parameter
	Resolution       string // RESOLUTION parameter (WxH)
	Audio            string // AUDIO alternative renditions group ID
}

// MediaSegment represents a media segment included in a media playlist.
type MediaSegment struct {
	SeqId         uint64  // SeqId is the sequence number of the segment.
	URI           string  // URI is the path to the media segment.
	Duration      float64 // EXTINF first parameter. Duration in seconds.
	Title         string  // EXTINF optional second parameter.
	Discontinuity bool    // EXT-X-DISCONTINUITY before this segment
	Gap           bool    // EXT-X-GAP, the segment has no media data
}
