package ranges

import "fmt"

// Record two segments loaded at different bitrates and query the buffer
// around the play position.
func ExampleRangeSet_Insert() {
	rs := New()
	_ = rs.Insert(800000, 0, 10)
	_ = rs.Insert(1600000, 4, 12)
	fmt.Println(rs)
	fmt.Println(GetGap(6, rs), GetLoaded(6, rs), GetNextRangeGap(6, rs))
	// Output:
	// [0.000-4.000@800000 4.000-12.000@1600000]
	// 6 2 +Inf
}

// A position in a hole after buffered data gives a negative gap.
func ExampleGetGap_hole() {
	buffered := TimeRanges{{0, 10}, {20, 30}}
	fmt.Println(GetGap(5, buffered))
	fmt.Println(GetGap(15, buffered))
	fmt.Println(GetGap(-1, buffered))
	// Output:
	// 5
	// -5
	// +Inf
}

func ExampleTracks_Playable() {
	var tracks Tracks
	_ = tracks.Track("audio").Insert(128000, 0, 30)
	_ = tracks.Track("video").Insert(2000000, 2, 16)
	fmt.Println(tracks.Playable())
	// Output:
	// [2.000-16.000@128000]
}
