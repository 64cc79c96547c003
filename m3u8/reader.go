package m3u8

/*
 This file defines functions related to playlist parsing.
*/

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var ErrExtM3UAbsent = errors.New("#EXTM3U absent")
var ErrCannotDetectPlaylistType = errors.New("cannot detect playlist type")

// maxLineLength bounds a single playlist line.
const maxLineLength = 1 << 20

var reAttribute = regexp.MustCompile(`([a-zA-Z0-9_-]+)=("[^"]+"|[^",]+)`)

// NewMasterPlaylist creates a new empty master playlist.
func NewMasterPlaylist() *MasterPlaylist {
	return new(MasterPlaylist)
}

// NewMediaPlaylist creates a new empty media playlist.
func NewMediaPlaylist() *MediaPlaylist {
	return new(MediaPlaylist)
}

// Decode parses a master playlist passed from the buffer. If `strict`
// parameter is true then it returns first syntax error.
func (p *MasterPlaylist) Decode(data bytes.Buffer, strict bool) error {
	return p.DecodeFrom(&data, strict)
}

// DecodeFrom parses a master playlist passed from an io.Reader.
// If strict parameter is true then it returns first syntax error.
func (p *MasterPlaylist) DecodeFrom(reader io.Reader, strict bool) error {
	d := &decoder{strict: strict, master: p}
	return d.run(reader)
}

// Decode parses a media playlist passed from the buffer. If strict
// parameter is true then return first syntax error.
func (p *MediaPlaylist) Decode(data bytes.Buffer, strict bool) error {
	return p.DecodeFrom(&data, strict)
}

// DecodeFrom parses a media playlist passed from the io.Reader stream.
// If strict parameter is true then it returns first syntax error.
func (p *MediaPlaylist) DecodeFrom(reader io.Reader, strict bool) error {
	d := &decoder{strict: strict, media: p}
	return d.run(reader)
}

// DecodeFrom detects type of playlist and decodes it.
// Both playlist types are filled until a tag specific to one of them is met.
func DecodeFrom(reader io.Reader, strict bool) (Playlist, ListType, error) {
	d := &decoder{strict: strict, master: NewMasterPlaylist(), media: NewMediaPlaylist()}
	if err := d.run(reader); err != nil {
		return nil, d.listType, err
	}
	switch d.listType {
	case MASTER:
		return d.master, MASTER, nil
	case MEDIA:
		return d.media, MEDIA, nil
	}
	return nil, d.listType, ErrCannotDetectPlaylistType
}

// decoder holds the state carried from one playlist line to the next.
// A nil master or media means that playlist type is not being decoded.
type decoder struct {
	strict bool
	master *MasterPlaylist
	media  *MediaPlaylist

	listType ListType
	m3u      bool
	variant  *Variant // waiting for its URI line

	inf           bool // EXTINF seen, waiting for the segment URI
	duration      float64
	title         string
	discontinuity bool
	gap           bool
}

// run decodes every non-empty line of r. Line errors are returned only in
// strict mode, otherwise the line is skipped.
func (d *decoder) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if err := d.decodeLine(line); err != nil && d.strict {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if d.strict && !d.m3u {
		return ErrExtM3UAbsent
	}
	return nil
}

func (d *decoder) decodeMaster() bool { return d.master != nil && d.listType != MEDIA }
func (d *decoder) decodeMedia() bool { return d.media != nil && d.listType != MASTER }

func (d *decoder) decodeLine(line string) error {
	if line == "#EXTM3U" {
		d.m3u = true
		return nil
	}
	if !strings.HasPrefix(line, "#") {
		return d.decodeURI(line)
	}
	tag, value, _ := strings.Cut(line, ":")
	if d.decodeMaster() {
		if err := d.masterTag(tag, value); err != nil {
			return err
		}
	}
	if d.decodeMedia() {
		return d.mediaTag(tag, value)
	}
	return nil
}

func (d *decoder) decodeURI(uri string) error {
	if d.decodeMaster() && d.variant != nil {
		d.variant.URI = uri
		d.variant = nil
		return nil
	}
	if !d.decodeMedia() {
		return nil
	}
	if !d.inf {
		return fmt.Errorf("segment URI without EXTINF: %q", uri)
	}
	p := d.media
	p.Segments = append(p.Segments, &MediaSegment{
		SeqId:         p.SeqNo + uint64(len(p.Segments)),
		URI:           uri,
		Duration:      d.duration,
		Title:         d.title,
		Discontinuity: d.discontinuity,
		Gap:           d.gap,
	})
	d.inf, d.discontinuity, d.gap = false, false, false
	return nil
}

func (d *decoder) masterTag(tag, value string) error {
	switch tag {
	case "#EXT-X-STREAM-INF":
		d.listType = MASTER
		variant, err := parseStreamInf(value, d.strict)
		if err != nil {
			return fmt.Errorf("error parsing EXT-X-STREAM-INF: %w", err)
		}
		d.variant = variant
		d.master.Variants = append(d.master.Variants, variant)
	case "#EXT-X-MEDIA", "#EXT-X-I-FRAME-STREAM-INF":
		d.listType = MASTER
	}
	return nil
}

func (d *decoder) mediaTag(tag, value string) error {
	p := d.media
	switch tag {
	case "#EXTINF":
		d.listType = MEDIA
		return d.extinf(value)
	case "#EXT-X-ENDLIST":
		d.listType = MEDIA
		p.Closed = true
	case "#EXT-X-DISCONTINUITY":
		d.listType = MEDIA
		d.discontinuity = true
	case "#EXT-X-GAP":
		d.listType = MEDIA
		d.gap = true
	case "#EXT-X-TARGETDURATION":
		d.listType = MEDIA
		n, err := strconv.ParseUint(value, 10, 0)
		if err != nil {
			return fmt.Errorf("EXT-X-TARGETDURATION: %w", err)
		}
		p.TargetDuration = uint(n)
	case "#EXT-X-MEDIA-SEQUENCE":
		d.listType = MEDIA
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("EXT-X-MEDIA-SEQUENCE: %w", err)
		}
		p.SeqNo = n
	case "#EXT-X-DISCONTINUITY-SEQUENCE":
		d.listType = MEDIA
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("EXT-X-DISCONTINUITY-SEQUENCE: %w", err)
		}
		p.DiscontinuitySeq = n
	case "#EXT-X-PLAYLIST-TYPE":
		d.listType = MEDIA
		switch value {
		case "EVENT":
			p.MediaType = EVENT
		case "VOD":
			p.MediaType = VOD
		default:
			return fmt.Errorf("unknown playlist type: %q", value)
		}
	}
	return nil
}

// extinf starts a segment. The title follows the first comma. In relaxed
// mode a malformed duration is kept as parsed, or zero.
func (d *decoder) extinf(value string) error {
	duration, title, found := strings.Cut(value, ",")
	d.inf = true
	d.title = title
	d.duration = 0
	if !found {
		return fmt.Errorf("could not parse: %q", "#EXTINF:"+value)
	}
	if duration == "" {
		return nil
	}
	v, err := strconv.ParseFloat(duration, 64)
	if err != nil {
		return fmt.Errorf("duration parsing error: %w", err)
	}
	d.duration = v
	if !validDuration(v) {
		return fmt.Errorf("duration %q: %w", duration, ErrInvalidDuration)
	}
	return nil
}

// parseStreamInf reads the attributes of an EXT-X-STREAM-INF tag.
// A malformed bandwidth is an error in strict mode and zero otherwise.
func parseStreamInf(attrs string, strict bool) (*Variant, error) {
	variant := new(Variant)
	for _, m := range reAttribute.FindAllStringSubmatch(attrs, -1) {
		name, value := m[1], m[2]
		switch name {
		case "BANDWIDTH", "AVERAGE-BANDWIDTH":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil && strict {
				return nil, err
			}
			if name == "BANDWIDTH" {
				variant.Bandwidth = uint32(n)
			} else {
				variant.AverageBandwidth = uint32(n)
			}
		case "CODECS":
			variant.Codecs = DeQuote(value)
		case "RESOLUTION":
			variant.Resolution = value
		case "AUDIO":
			variant.Audio = DeQuote(value)
		}
	}
	return variant, nil
}

// DeQuote removes surrounding double quotes from a string.
func DeQuote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
