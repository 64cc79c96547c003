package m3u8

import (
	"fmt"
	"testing"

	"github.com/matryer/is"
)

func TestCalcMinVersionMasterPlaylist(t *testing.T) {
	is := is.New(t)
	p := NewMasterPlaylist()
	p.Append("low.m3u8", VariantParams{Bandwidth: 800000})
	ver, reason := p.CalcMinVersion()
	is.Equal(ver, minVer)
	is.Equal(reason, "decimal floating-point EXTINF durations")
}

func TestCalcMinVersionMediaPlaylist(t *testing.T) {
	is := is.New(t)

	pl3, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist.m3u8")
	is.NoErr(err) // must decode sample-playlists/media-playlist.m3u8

	pl8, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist-with-discontinuity-and-gap.m3u8")
	is.NoErr(err) // must decode sample-playlists/media-playlist-with-discontinuity-and-gap.m3u8

	cases := []struct {
		playlist        Playlist
		expectedVersion uint8
		expectedReason  string
	}{
		{NewMediaPlaylist(), minVer, "decimal floating-point EXTINF durations"},
		{pl3, minVer, "decimal floating-point EXTINF durations"},
		{pl8, 8, "EXT-X-GAP tag"},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			is := is.New(t)
			ver, reason := c.playlist.CalcMinVersion()
			is.Equal(ver, c.expectedVersion)
			is.Equal(reason, c.expectedReason)
		})
	}
}
