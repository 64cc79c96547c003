package m3u8

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/mogiioin/hls-ranges/ranges"
)

func TestTimeline(t *testing.T) {
	is := is.New(t)
	p, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist.m3u8")
	is.NoErr(err) // must decode playlist
	is.Equal(p.TotalDuration(), 22.5)
	is.Equal(p.Timeline(), ranges.TimeRanges{
		{Start: 0, End: 6},
		{Start: 6, End: 12},
		{Start: 12, End: 16.5},
		{Start: 16.5, End: 22.5},
	})

	p.StartOffset = 100
	tl := p.Timeline()
	is.Equal(tl[0], ranges.TimeRange{Start: 100, End: 106})
	is.Equal(tl[3].End, 122.5)
}

func TestTimelineEmpty(t *testing.T) {
	is := is.New(t)
	p := NewMediaPlaylist()
	is.Equal(len(p.Timeline()), 0)
	is.Equal(p.TotalDuration(), 0.0)
	is.True(p.SegmentAt(0) == nil) // no segment in empty playlist
}

func TestSegmentRange(t *testing.T) {
	p, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist.m3u8")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		seqID uint64
		ok    bool
		want  ranges.TimeRange
	}{
		{100, true, ranges.TimeRange{Start: 0, End: 6}},
		{102, true, ranges.TimeRange{Start: 12, End: 16.5}},
		{103, true, ranges.TimeRange{Start: 16.5, End: 22.5}},
		{99, false, ranges.TimeRange{}},
		{104, false, ranges.TimeRange{}},
		{0, false, ranges.TimeRange{}},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			is := is.New(t)
			got, ok := p.SegmentRange(c.seqID)
			is.Equal(ok, c.ok)
			is.Equal(got, c.want)
		})
	}
}

func TestSegmentAt(t *testing.T) {
	is := is.New(t)
	p, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist.m3u8")
	is.NoErr(err) // must decode playlist
	is.Equal(p.SegmentAt(0).URI, "seg100.ts")
	is.Equal(p.SegmentAt(5.9).URI, "seg100.ts")
	is.Equal(p.SegmentAt(6).URI, "seg101.ts") // end is exclusive
	is.Equal(p.SegmentAt(16.5).URI, "seg103.ts")
	is.True(p.SegmentAt(22.5) == nil) // past the last segment
	is.True(p.SegmentAt(-1) == nil)   // before the first segment
}

func TestLoadSegment(t *testing.T) {
	is := is.New(t)
	p, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist.m3u8")
	is.NoErr(err) // must decode playlist
	rs := ranges.New()
	is.NoErr(p.LoadSegment(rs, 800000, 100))  // first segment
	is.NoErr(p.LoadSegment(rs, 800000, 101))  // contiguous, same bitrate
	is.NoErr(p.LoadSegment(rs, 1600000, 103)) // after a hole
	is.Equal(rs.String(), "[0.000-12.000@800000 16.500-22.500@1600000]")
	is.Equal(ranges.GetGap(12, rs), 4.5)

	is.NoErr(p.LoadSegment(rs, 1600000, 101)) // upgrade replaces the overlap
	is.Equal(rs.String(), "[0.000-6.000@800000 6.000-12.000@1600000 16.500-22.500@1600000]")

	err = p.LoadSegment(rs, 800000, 104)
	is.True(errors.Is(err, ErrSegmentNotFound)) // 104 is past the end
	is.Equal(rs.Len(), 3)                       // set unchanged
}

func TestLoadSegmentInvalidDuration(t *testing.T) {
	is := is.New(t)
	p := NewMediaPlaylist()
	data := "#EXTM3U\n#EXTINF:6,\na.ts\n#EXTINF:NaN,\nb.ts\n#EXTINF:6,\nc.ts\n#EXTINF:-2,\nd.ts\n"
	is.NoErr(p.DecodeFrom(strings.NewReader(data), false)) // relaxed decode keeps the durations
	rs := ranges.New()
	is.NoErr(p.LoadSegment(rs, 800000, 0)) // valid segment
	for _, seqID := range []uint64{1, 2, 3} {
		err := p.LoadSegment(rs, 800000, seqID)
		is.True(errors.Is(err, ErrInvalidDuration)) // NaN duration or a NaN start before it
	}
	is.Equal(rs.String(), "[0.000-6.000@800000]") // set unchanged
}

func TestLoadGapSegment(t *testing.T) {
	is := is.New(t)
	p, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist-with-discontinuity-and-gap.m3u8")
	is.NoErr(err) // must decode playlist
	rs := ranges.New()
	is.NoErr(p.LoadSegment(rs, 800000, 2)) // movieA
	err = p.LoadSegment(rs, 800000, 3)
	is.True(errors.Is(err, ErrGapSegment)) // movieB has no media
	is.Equal(rs.String(), "[18.000-28.000@800000]")
}

func TestVariantByBitrate(t *testing.T) {
	is := is.New(t)
	f, err := os.Open("sample-playlists/master.m3u8")
	is.NoErr(err) // must open file
	defer f.Close()
	p := NewMasterPlaylist()
	is.NoErr(p.DecodeFrom(bufio.NewReader(f), true)) // must decode playlist
	v := p.VariantByBitrate(3200000)
	is.True(v != nil) // 1080p variant exists
	is.Equal(v.URI, "video/1080p.m3u8")
	is.Equal(v.Bitrate(), ranges.Bitrate(3200000))
	is.True(p.VariantByBitrate(1) == nil) // no such variant
}

func ExampleMediaPlaylist_LoadSegment() {
	f, _ := os.Open("sample-playlists/media-playlist.m3u8")
	defer f.Close()
	p := NewMediaPlaylist()
	_ = p.DecodeFrom(bufio.NewReader(f), true)
	rs := ranges.New()
	_ = p.LoadSegment(rs, 1280000, p.SeqNo)
	_ = p.LoadSegment(rs, 1280000, p.SeqNo+1)
	fmt.Println(rs)
	// Output:
	// [0.000-12.000@1280000]
}
