// Package trace replays recorded buffering activity against range sets.
//
// A trace lists tracks, each with the spans loaded into it over time, and
// the playback positions to query once every event has been applied.
// Spans are given directly or as segment sequence numbers of a media
// playlist.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mogiioin/hls-ranges/ranges"
)

// ErrInvalidTrace is returned for traces that cannot be replayed.
var ErrInvalidTrace = errors.New("invalid trace")

// Trace is the content of a trace file.
type Trace struct {
	Tracks    []Track   `yaml:"tracks"`
	Positions []float64 `yaml:"positions,omitempty"`
}

// Track is the activity of one track.
type Track struct {
	Name string `yaml:"name"`
	// Playlist is the path of the media playlist segment events refer to.
	// Relative paths are resolved against the directory of the trace file.
	Playlist string  `yaml:"playlist,omitempty"`
	Events   []Event `yaml:"events"`
	// Buffered is a buffered report to intersect the track with after
	// every event has been applied.
	Buffered []Span `yaml:"buffered,omitempty"`
}

// Event is one change of a track. Either Segment or both Start and End are set.
type Event struct {
	Bitrate ranges.Bitrate `yaml:"bitrate,omitempty"`
	Start   *float64       `yaml:"start,omitempty"`
	End     *float64       `yaml:"end,omitempty"`
	Segment *uint64        `yaml:"segment,omitempty"`
	// Remove evicts [Start, End) instead of inserting it.
	Remove bool `yaml:"remove,omitempty"`
}

// Span is a time range as written in traces and reports.
type Span struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Load reads and validates the trace file at path.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return Parse(bytes.NewReader(data), filepath.Dir(path))
}

// Parse decodes and validates a trace. Relative playlist paths are joined to baseDir.
func Parse(r io.Reader, baseDir string) (*Trace, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Trace
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTrace)
		}
		return nil, fmt.Errorf("decoding trace: %w", err)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	for i := range t.Tracks {
		p := t.Tracks[i].Playlist
		if p != "" && !filepath.IsAbs(p) && baseDir != "" {
			t.Tracks[i].Playlist = filepath.Join(baseDir, p)
		}
	}
	return &t, nil
}

// Validate checks the trace for errors.
func (t *Trace) Validate() error {
	if len(t.Tracks) == 0 {
		return fmt.Errorf("%w: no tracks", ErrInvalidTrace)
	}
	seen := make(map[string]bool, len(t.Tracks))
	for i, tr := range t.Tracks {
		if tr.Name == "" {
			return fmt.Errorf("%w: track %d has no name", ErrInvalidTrace, i)
		}
		if tr.Name == PlayableName {
			return fmt.Errorf("%w: track name %q is reserved", ErrInvalidTrace, tr.Name)
		}
		if seen[tr.Name] {
			return fmt.Errorf("%w: duplicate track %q", ErrInvalidTrace, tr.Name)
		}
		seen[tr.Name] = true
		for j, ev := range tr.Events {
			if err := ev.validate(tr.Playlist != ""); err != nil {
				return fmt.Errorf("%w: track %q event %d: %s", ErrInvalidTrace, tr.Name, j, err)
			}
		}
	}
	return nil
}

func (e Event) validate(hasPlaylist bool) error {
	bounds := e.Start != nil || e.End != nil
	switch {
	case e.Segment != nil && bounds:
		return errors.New("segment and start/end are exclusive")
	case e.Segment != nil && e.Remove:
		return errors.New("remove needs start and end")
	case e.Segment != nil && !hasPlaylist:
		return errors.New("segment without playlist")
	case e.Segment == nil && (e.Start == nil || e.End == nil):
		return errors.New("start and end are required")
	}
	return nil
}

// TimeRanges returns the spans as a ranges collection.
func TimeRanges(spans []Span) ranges.TimeRanges {
	out := make(ranges.TimeRanges, 0, len(spans))
	for _, s := range spans {
		out = append(out, ranges.TimeRange{Start: s.Start, End: s.End})
	}
	return out
}
