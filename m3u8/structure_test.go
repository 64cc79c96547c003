package m3u8

/*
 Playlist structures tests.
*/

import (
	"testing"
)

func CheckType(t *testing.T, p Playlist) {
	t.Logf("%T implements Playlist interface OK\n", p)
}

// Check that media playlist implements Playlist interface.
func TestMediaImplementsInterface(t *testing.T) {
	CheckType(t, NewMediaPlaylist())
}

// Check that master playlist implements Playlist interface.
func TestMasterImplementsInterface(t *testing.T) {
	CheckType(t, NewMasterPlaylist())
}
