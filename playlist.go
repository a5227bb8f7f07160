package mpd

import (
	"time"

	"github.com/pior/mpd/proto"
)

// PlaylistDecoder decodes the records of listplaylists.
var PlaylistDecoder = FromPairs[Playlist]("playlist")

// Playlist is a stored playlist.
type Playlist struct {
	Name         string
	LastModified time.Time
}

// DecodePair implements PairDecoder.
func (pl *Playlist) DecodePair(p proto.Pair) error {
	switch p.Key {
	case "playlist":
		pl.Name = p.Value
	case "Last-Modified":
		t, err := parseTime(p.Key, p.Value)
		if err != nil {
			return err
		}
		pl.LastModified = t
	}
	return nil
}
