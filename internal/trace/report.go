package trace

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mogiioin/hls-ranges/ranges"
)

// Report is the outcome of a replay.
type Report struct {
	Strict   bool          `yaml:"strict"`
	Tracks   []TrackReport `yaml:"tracks"`
	Playable []RangeView   `yaml:"playable"`
	Queries  []Query       `yaml:"queries,omitempty"`
}

// TrackReport holds the final ranges of a track.
type TrackReport struct {
	Name     string      `yaml:"name"`
	Ranges   []RangeView `yaml:"ranges"`
	Applied  int         `yaml:"applied"`
	Rejected []Rejection `yaml:"rejected,omitempty"`
}

// RangeView is a range as written in reports.
type RangeView struct {
	Start   float64        `yaml:"start"`
	End     float64        `yaml:"end"`
	Bitrate ranges.Bitrate `yaml:"bitrate"`
}

// Rejection is an event the range set refused.
type Rejection struct {
	Event int    `yaml:"event"`
	Error string `yaml:"error"`
}

// Query holds the buffer metrics of one target at one position.
// Range is the range GetRange resolves, Bitrate the one of the range
// actually playing at Position, or 0 in a hole.
type Query struct {
	Target       string         `yaml:"target"`
	Position     float64        `yaml:"position"`
	Range        *Span          `yaml:"range,omitempty"`
	Bitrate      ranges.Bitrate `yaml:"bitrate,omitempty"`
	Gap          float64        `yaml:"gap"`
	Loaded       float64        `yaml:"loaded"`
	Size         float64        `yaml:"size"`
	NextRangeGap float64        `yaml:"next_range_gap"`
}

func rangeViews(rs []ranges.Range) []RangeView {
	out := make([]RangeView, 0, len(rs))
	for _, r := range rs {
		out = append(out, RangeView{Start: r.Start, End: r.End, Bitrate: r.Bitrate})
	}
	return out
}

// String returns the view as start-end@bitrate.
func (v RangeView) String() string {
	return ranges.Range{Start: v.Start, End: v.End, Bitrate: v.Bitrate}.String()
}

// WriteYAML writes the report as a YAML document. Infinite values are
// written as .inf.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteText writes the report for a terminal.
func (r *Report) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}
	for _, tr := range r.Tracks {
		ew.printf("track %s: %d applied, %d rejected\n", tr.Name, tr.Applied, len(tr.Rejected))
		for _, v := range tr.Ranges {
			ew.printf("  %s\n", v)
		}
		for _, rej := range tr.Rejected {
			ew.printf("  rejected event %d: %s\n", rej.Event, rej.Error)
		}
	}
	ew.printf("playable:\n")
	for _, v := range r.Playable {
		ew.printf("  %s\n", v)
	}
	if len(r.Playable) == 0 {
		ew.printf("  none\n")
	}
	if len(r.Queries) > 0 {
		ew.printf("queries:\n")
		ew.printf("  %-12s %10s %10s %10s %10s %10s  %s\n",
			"target", "position", "gap", "loaded", "size", "next_gap", "range")
	}
	for _, q := range r.Queries {
		rng := "-"
		if q.Range != nil {
			rng = fmt.Sprintf("%.3f-%.3f", q.Range.Start, q.Range.End)
			if q.Bitrate != 0 {
				rng += fmt.Sprintf("@%d", q.Bitrate)
			}
		}
		ew.printf("  %-12s %10.3f %10.3f %10.3f %10.3f %10.3f  %s\n",
			q.Target, q.Position, q.Gap, q.Loaded, q.Size, q.NextRangeGap, rng)
	}
	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
