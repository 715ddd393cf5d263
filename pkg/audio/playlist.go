package audio

import "math/rand/v2"

// Playlist rotates through background tracks in random order.
type Playlist struct {
	tracks  []string
	current int
	rng     *rand.Rand
}

// NewPlaylist starts at a random track.
func NewPlaylist(tracks []string, rng *rand.Rand) *Playlist {
	p := &Playlist{tracks: append([]string(nil), tracks...), rng: rng}
	if len(p.tracks) > 0 {
		p.current = rng.IntN(len(p.tracks))
	}
	return p
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.tracks) }

// Current returns the selected track, or "" for an empty playlist.
func (p *Playlist) Current() string {
	if len(p.tracks) == 0 {
		return ""
	}
	return p.tracks[p.current]
}

// Next picks a different track whenever there is more than one.
func (p *Playlist) Next() string {
	if len(p.tracks) > 1 {
		idx := p.rng.IntN(len(p.tracks) - 1)
		if idx >= p.current {
			idx++
		}
		p.current = idx
	}
	return p.Current()
}
