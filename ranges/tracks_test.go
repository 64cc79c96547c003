package ranges

import (
	"testing"

	"github.com/matryer/is"
)

func TestTracksPlayable(t *testing.T) {
	is := is.New(t)
	var tracks Tracks
	is.NoErr(tracks.Track("video").Insert(3000000, 0, 20)) // video 0-20
	is.NoErr(tracks.Track("audio").Insert(128000, 0, 5))   // audio 0-5
	is.NoErr(tracks.Track("audio").Insert(128000, 10, 25)) // audio 10-25

	is.Equal(tracks.Names(), []string{"audio", "video"})
	playable := tracks.Playable()
	is.Equal(playable.Ranges(), []Range{{0, 5, 128000}, {10, 20, 128000}}) // both holes kept
	is.Equal(tracks.Track("video").Len(), 1)                               // tracks untouched
}

func TestTracksPlayableThreeTracks(t *testing.T) {
	is := is.New(t)
	var tracks Tracks
	is.NoErr(tracks.Track("a").Insert(1, 0, 30))
	is.NoErr(tracks.Track("b").Insert(2, 5, 25))
	is.NoErr(tracks.Track("c").Insert(3, 0, 8))
	is.NoErr(tracks.Track("c").Insert(4, 8, 12))
	is.Equal(tracks.Playable().Ranges(), []Range{{5, 12, 1}}) // merged back to one range of track a
}

func TestTracksEmpty(t *testing.T) {
	is := is.New(t)
	var tracks Tracks
	is.Equal(tracks.Playable().Len(), 0) // no track, nothing playable
	tracks.Track("video")
	is.Equal(tracks.Playable().Len(), 0) // empty track, nothing playable
}

func TestTracksStrict(t *testing.T) {
	is := is.New(t)
	tracks := Tracks{Strict: true}
	err := tracks.Track("video").Insert(1, -2, 3)
	is.True(err != nil) // strict applies to created tracks
}
