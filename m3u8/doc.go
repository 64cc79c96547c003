/*
Package m3u8 decodes the parts of HLS m3u8 playlists needed to know where
segments sit on the media timeline and at which bitrate they are offered.

A MasterPlaylist lists the variants of a presentation. The BANDWIDTH of a
variant is used as the bitrate of the data loaded from it.

A MediaPlaylist lists segments with their EXTINF durations. Timeline turns them
into consecutive spans starting at StartOffset, and LoadSegment records a
downloaded segment into a ranges.RangeSet.

Decoding follows [IETF RFC8216]. With strict set, the first syntax error
is returned, otherwise malformed lines are skipped. Tags that do not affect
the timeline are ignored.

Example, without error handling:

	f, _ := os.Open("sample-playlists/media-playlist.m3u8")
	p := NewMediaPlaylist()
	_ = p.DecodeFrom(bufio.NewReader(f), true)
	rs := ranges.New()
	_ = p.LoadSegment(rs, 1280000, p.SeqNo)
	fmt.Println(rs)

[IETF RFC8216]: https://tools.ietf.org/html/rfc8216
*/
package m3u8
