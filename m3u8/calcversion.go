package m3u8

// minVer is the lowest EXT-X-VERSION written. Version 3 allows
// decimal EXTINF durations.
const minVer = uint8(3)

func updateMin(ver *uint8, reason *string, newVer uint8, newReason string) {
	if newVer <= *ver { // only update if higher version
		return
	}
	*ver = newVer
	*reason = newReason
}

// CalcMinVersion returns the minimal version of the HLS protocol that is
// required to support the playlist according to the [Protocol Version Compatibility].
// The reason is a human-readable string explaining why the version is required.
//
// [Protocol Version Compatibility]: https://datatracker.ietf.org/doc/html/draft-pantos-hls-rfc8216bis#section-8
func (p *MasterPlaylist) CalcMinVersion() (ver uint8, reason string) {
	return minVer, "decimal floating-point EXTINF durations"
}

// CalcMinVersion returns the minimal version of the HLS protocol that is
// required to support the playlist according to the [Protocol Version Compatibility].
// The reason is a human-readable string explaining why the version is required.
//
// [Protocol Version Compatibility]: https://datatracker.ietf.org/doc/html/draft-pantos-hls-rfc8216bis#section-8
func (p *MediaPlaylist) CalcMinVersion() (ver uint8, reason string) {
	ver = minVer
	reason = "decimal floating-point EXTINF durations"

	// A Media Playlist MUST indicate an EXT-X-VERSION of 8 or higher if it contains:
	// * The EXT-X-GAP tag.
	for _, seg := range p.Segments {
		if seg.Gap {
			updateMin(&ver, &reason, 8, "EXT-X-GAP tag")
			break
		}
	}
	return ver, reason
}
