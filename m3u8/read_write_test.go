package m3u8

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/matryer/is"
)

func TestReadWritePlaylists(t *testing.T) {
	files := []string{
		"sample-playlists/master.m3u8",
		"sample-playlists/media-playlist.m3u8",
		"sample-playlists/media-playlist-with-discontinuity-and-gap.m3u8",
	}
	for i, fileName := range files {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			is := is.New(t)
			f, err := os.Open(fileName)
			is.NoErr(err) // must open file
			defer f.Close()
			p, listType, err := DecodeFrom(bufio.NewReader(f), true)
			is.NoErr(err) // must decode playlist
			out := p.Encode()

			q, listType2, err := DecodeFrom(bytes.NewReader(out.Bytes()), true)
			is.NoErr(err)                      // must decode written playlist
			is.Equal(listType2, listType)      // same playlist type
			is.Equal(q.String(), out.String()) // written again identically
		})
	}
}

func TestReadWriteMediaPlaylistKeepsTimeline(t *testing.T) {
	is := is.New(t)
	p, err := readTestMediaPlaylist(t, "sample-playlists/media-playlist.m3u8")
	is.NoErr(err) // must decode playlist
	q := NewMediaPlaylist()
	is.NoErr(q.Decode(*p.Encode(), true)) // must decode written playlist
	is.Equal(q.Timeline(), p.Timeline())
	is.Equal(q.SeqNo, p.SeqNo)
	is.Equal(q.Segments[2].Title, "title")
}
