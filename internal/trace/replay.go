package trace

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mogiioin/hls-ranges/internal/observability"
	"github.com/mogiioin/hls-ranges/m3u8"
	"github.com/mogiioin/hls-ranges/ranges"
)

// PlayableName is the target name of queries on the playable ranges.
const PlayableName = "playable"

// Replayer applies traces to fresh range sets.
type Replayer struct {
	strict bool
}

// NewReplayer creates a replayer. With strict set, negative starts and
// empty spans are rejected.
func NewReplayer(strict bool) *Replayer {
	return &Replayer{strict: strict}
}

// Replay applies every event of t and queries the result at t.Positions.
// Events the range set refuses are logged and listed in the report; they
// do not stop the replay. Errors are returned for unreadable playlists
// and cancelled contexts. The logger is taken from ctx.
func (r *Replayer) Replay(ctx context.Context, t *Trace) (*Report, error) {
	logger := observability.WithComponent(observability.LoggerFromContext(ctx), "replay")
	tracks := ranges.Tracks{Strict: r.strict}
	report := &Report{Strict: r.strict}

	for _, tr := range t.Tracks {
		rs := tracks.Track(tr.Name)
		tracked, err := r.replayTrack(ctx, logger, &tr, rs)
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", tr.Name, err)
		}
		report.Tracks = append(report.Tracks, tracked)
	}

	playable := tracks.Playable()
	report.Playable = rangeViews(playable.Ranges())
	logger.InfoContext(ctx, "replay finished",
		slog.Int("tracks", len(report.Tracks)),
		slog.Int("playable_ranges", playable.Len()),
	)

	targets := make([]*ranges.RangeSet, 0, len(report.Tracks)+1)
	names := make([]string, 0, len(report.Tracks)+1)
	for _, tr := range report.Tracks {
		targets = append(targets, tracks.Track(tr.Name))
		names = append(names, tr.Name)
	}
	targets = append(targets, playable)
	names = append(names, PlayableName)

	for _, pos := range t.Positions {
		for i, rs := range targets {
			report.Queries = append(report.Queries, query(names[i], pos, rs))
		}
	}
	return report, nil
}

func (r *Replayer) replayTrack(ctx context.Context, logger *slog.Logger, tr *Track, rs *ranges.RangeSet) (TrackReport, error) {
	logger = observability.WithTrack(logger, tr.Name)
	out := TrackReport{Name: tr.Name}

	var playlist *m3u8.MediaPlaylist
	if tr.Playlist != "" {
		p, err := loadMediaPlaylist(tr.Playlist)
		if err != nil {
			return out, err
		}
		playlist = p
		logger.DebugContext(ctx, "playlist loaded",
			slog.String("path", tr.Playlist),
			slog.Int("segments", len(p.Segments)),
		)
	}

	for i, ev := range tr.Events {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := apply(rs, playlist, ev); err != nil {
			observability.WithError(logger, err).WarnContext(ctx, "event rejected", slog.Int("event", i))
			out.Rejected = append(out.Rejected, Rejection{Event: i, Error: err.Error()})
			continue
		}
		out.Applied++
		logger.DebugContext(ctx, "event applied",
			slog.Int("event", i),
			slog.String("ranges", rs.String()),
		)
	}

	if len(tr.Buffered) > 0 {
		kept := rs.Intersect(TimeRanges(tr.Buffered))
		logger.DebugContext(ctx, "intersected with buffered report", slog.Int("ranges", len(kept)))
	}
	out.Ranges = rangeViews(rs.Ranges())
	return out, nil
}

func apply(rs *ranges.RangeSet, playlist *m3u8.MediaPlaylist, ev Event) error {
	switch {
	case ev.Segment != nil:
		return playlist.LoadSegment(rs, ev.Bitrate, *ev.Segment)
	case ev.Remove:
		return rs.Remove(*ev.Start, *ev.End)
	default:
		return rs.Insert(ev.Bitrate, *ev.Start, *ev.End)
	}
}

func loadMediaPlaylist(path string) (*m3u8.MediaPlaylist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening playlist: %w", err)
	}
	defer f.Close()

	p := m3u8.NewMediaPlaylist()
	if err := p.DecodeFrom(bufio.NewReader(f), true); err != nil {
		return nil, fmt.Errorf("decoding playlist %s: %w", path, err)
	}
	return p, nil
}

func query(target string, pos float64, rs *ranges.RangeSet) Query {
	q := Query{
		Target:       target,
		Position:     pos,
		Gap:          rs.Gap(pos),
		Loaded:       rs.Loaded(pos),
		Size:         rs.Size(pos),
		NextRangeGap: rs.NextRangeGap(pos),
	}
	if tr := ranges.GetRange(pos, rs); tr != nil {
		q.Range = &Span{Start: tr.Start, End: tr.End}
	}
	if r := rs.RangeAt(pos); r != nil {
		q.Bitrate = r.Bitrate
	}
	return q
}
