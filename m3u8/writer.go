package m3u8

/*
 This file defines functions related to playlist generation.
*/

import (
	"bytes"
	"errors"
	"math"
	"strconv"
)

var ErrPlaylistEmpty = errors.New("playlist is empty")

// DefaultFloatPrecision is the number of decimals written for durations.
const DefaultFloatPrecision = 3

func strVer(ver uint8) string {
	return strconv.FormatUint(uint64(ver), 10)
}

// Append appends a variant to master playlist.
func (p *MasterPlaylist) Append(uri string, params VariantParams) {
	v := new(Variant)
	v.URI = uri
	v.VariantParams = params
	p.Variants = append(p.Variants, v)
}

// Encode generates the output in M3U8 format.
func (p *MasterPlaylist) Encode() *bytes.Buffer {
	buf := new(bytes.Buffer)
	ver, _ := p.CalcMinVersion()
	buf.WriteString("#EXTM3U\n#EXT-X-VERSION:")
	buf.WriteString(strVer(ver))
	buf.WriteRune('\n')
	for _, vnt := range p.Variants {
		writeExtXStreamInf(buf, vnt)
		buf.WriteString(vnt.URI)
		buf.WriteRune('\n')
	}
	return buf
}

// String provides the playlist fulfilling the Stringer interface.
func (p *MasterPlaylist) String() string {
	return p.Encode().String()
}

func writeExtXStreamInf(buf *bytes.Buffer, vnt *Variant) {
	buf.WriteString("#EXT-X-STREAM-INF:BANDWIDTH=")
	buf.WriteString(strconv.FormatUint(uint64(vnt.Bandwidth), 10))
	if vnt.AverageBandwidth != 0 {
		buf.WriteString(",AVERAGE-BANDWIDTH=")
		buf.WriteString(strconv.FormatUint(uint64(vnt.AverageBandwidth), 10))
	}
	if vnt.Codecs != "" {
		writeQuoted(buf, "CODECS", vnt.Codecs)
	}
	if vnt.Resolution != "" {
		writeUnQuoted(buf, "RESOLUTION", vnt.Resolution)
	}
	if vnt.Audio != "" {
		writeQuoted(buf, "AUDIO", vnt.Audio)
	}
	buf.WriteRune('\n')
}

// writeQuoted writes a quoted key-value pair to the buffer preceded by a comma.
func writeQuoted(buf *bytes.Buffer, key, value string) {
	buf.WriteRune(',')
	buf.WriteString(key)
	buf.WriteString(`="`)
	buf.WriteString(value)
	buf.WriteRune('"')
}

func writeUnQuoted(buf *bytes.Buffer, key, value string) {
	buf.WriteRune(',')
	buf.WriteString(key)
	buf.WriteRune('=')
	buf.WriteString(value)
}

// Append appends a segment to the media playlist. The sequence number follows
// the last segment and the target duration grows to cover the new duration.
func (p *MediaPlaylist) Append(uri string, duration float64, title string) {
	seg := &MediaSegment{
		SeqId:    p.SeqNo + uint64(len(p.Segments)),
		URI:      uri,
		Duration: duration,
		Title:    title,
	}
	p.Segments = append(p.Segments, seg)
	p.TargetDuration = calcNewTargetDuration(duration, p.TargetDuration)
}

// calcNewTargetDuration returns the segment duration rounded up, if larger
// than the old target duration.
func calcNewTargetDuration(segDur float64, oldTargetDuration uint) uint {
	new := uint(math.Ceil(segDur))
	if new > oldTargetDuration {
		return new
	}
	return oldTargetDuration
}

// SetDiscontinuity sets discontinuity flag for the currently last media segment.
func (p *MediaPlaylist) SetDiscontinuity() error {
	if len(p.Segments) == 0 {
		return ErrPlaylistEmpty
	}
	p.Segments[len(p.Segments)-1].Discontinuity = true
	return nil
}

// SetGap sets the gap flag for the currently last media segment.
// A gap segment holds no media data and is never loaded.
func (p *MediaPlaylist) SetGap() error {
	if len(p.Segments) == 0 {
		return ErrPlaylistEmpty
	}
	p.Segments[len(p.Segments)-1].Gap = true
	return nil
}

// Close marks the playlist as complete. Encode then writes EXT-X-ENDLIST.
func (p *MediaPlaylist) Close() {
	p.Closed = true
}

// Encode generates the output in M3U8 format.
func (p *MediaPlaylist) Encode() *bytes.Buffer {
	buf := new(bytes.Buffer)
	ver, _ := p.CalcMinVersion()
	buf.WriteString("#EXTM3U\n#EXT-X-VERSION:")
	buf.WriteString(strVer(ver))
	buf.WriteRune('\n')

	if p.MediaType > 0 {
		buf.WriteString("#EXT-X-PLAYLIST-TYPE:")
		switch p.MediaType {
		case EVENT:
			buf.WriteString("EVENT\n")
		case VOD:
			buf.WriteString("VOD\n")
		}
	}
	buf.WriteString("#EXT-X-MEDIA-SEQUENCE:")
	buf.WriteString(strconv.FormatUint(p.SeqNo, 10))
	buf.WriteRune('\n')
	buf.WriteString("#EXT-X-TARGETDURATION:")
	buf.WriteString(strconv.FormatUint(uint64(p.TargetDuration), 10))
	buf.WriteRune('\n')
	if p.DiscontinuitySeq != 0 {
		buf.WriteString("#EXT-X-DISCONTINUITY-SEQUENCE:")
		buf.WriteString(strconv.FormatUint(p.DiscontinuitySeq, 10))
		buf.WriteRune('\n')
	}

	durationCache := make(map[float64]string)
	for _, seg := range p.Segments {
		if seg.Discontinuity {
			buf.WriteString("#EXT-X-DISCONTINUITY\n")
		}
		if seg.Gap {
			buf.WriteString("#EXT-X-GAP\n")
		}
		writeExtInfWithCache(buf, seg.Duration, seg.Title, durationCache)
		buf.WriteString(seg.URI)
		buf.WriteRune('\n')
	}

	if p.Closed {
		buf.WriteString("#EXT-X-ENDLIST\n")
	}
	return buf
}

// writeExtInfWithCache writes the EXTINF tag and value to the buffer.
// Formatted durations are cached since most segments share the same one.
func writeExtInfWithCache(buf *bytes.Buffer, duration float64, title string, cache map[float64]string) {
	buf.WriteString("#EXTINF:")
	if str, ok := cache[duration]; ok {
		buf.WriteString(str)
	} else {
		fstr := strconv.FormatFloat(duration, 'f', DefaultFloatPrecision, 64)
		cache[duration] = fstr
		buf.WriteString(fstr)
	}
	buf.WriteRune(',')
	buf.WriteString(title)
	buf.WriteRune('\n')
}

// String provides the playlist fulfilling the Stringer interface.
func (p *MediaPlaylist) String() string {
	return p.Encode().String()
}
