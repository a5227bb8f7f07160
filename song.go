package mpd

import (
	"strconv"
	"strings"
	"time"

	"github.com/pior/mpd/proto"
)

// SongDecoder decodes the records of playlistinfo, currentsong and friends.
var SongDecoder = FromPairs[Song]("file")

// SongID is the queue-stable identifier MPD assigns to a queued song.
type SongID uint32

// QueuePlace locates a song in the queue.
type QueuePlace struct {
	ID   SongID
	Pos  uint32
	Prio uint8
}

// Range is a sub-range of a song to play. End is nil for an open range.
type Range struct {
	Start time.Duration
	End   *time.Duration
}

// ParseRange parses "<start>-<end>" where either side may be empty and
// each side is a number of seconds, possibly fractional.
func ParseRange(s string) (Range, error) {
	var r Range
	startStr, endStr, _ := strings.Cut(s, "-")

	if startStr != "" {
		start, err := parseFractionalSeconds(startStr)
		if err != nil {
			return Range{}, err
		}
		r.Start = start
	}

	if endStr != "" {
		end, err := parseFractionalSeconds(endStr)
		if err != nil {
			return Range{}, err
		}
		r.End = &end
	}

	return r, nil
}

// String formats the range as the "<start>:<end>" argument of rangeid.
func (r Range) String() string {
	s := formatSeconds(r.Start) + ":"
	if r.End != nil {
		s += formatSeconds(*r.End)
	}
	return s
}

// Song is a song record. Keys without a dedicated field are kept in Tags,
// repeated values included.
type Song struct {
	File         string
	Name         string
	Title        string
	LastModified time.Time
	Duration     *time.Duration
	Place        *QueuePlace
	Range        *Range
	Tags         map[string][]string
}

// Tag returns the first value of the named tag.
func (s Song) Tag(name string) string {
	if values := s.Tags[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// DecodePair implements PairDecoder.
func (s *Song) DecodePair(p proto.Pair) error {
	switch p.Key {
	case "file":
		s.File = p.Value
	case "Title":
		s.Title = p.Value
	case "Name":
		s.Name = p.Value
	case "Last-Modified":
		t, err := parseTime(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.LastModified = t
	case "Time":
		d, err := parseSeconds(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.Duration = &d
	case "Range":
		r, err := ParseRange(p.Value)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.Range = &r
	case "Id":
		id, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.place().ID = SongID(id)
	case "Pos":
		pos, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.place().Pos = pos
	case "Prio":
		prio, err := strconv.ParseUint(p.Value, 10, 8)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.place().Prio = uint8(prio)
	default:
		if s.Tags == nil {
			s.Tags = make(map[string][]string)
		}
		s.Tags[p.Key] = append(s.Tags[p.Key], p.Value)
	}
	return nil
}

// place returns the queue place, creating it on the first Id, Pos or Prio.
func (s *Song) place() *QueuePlace {
	if s.Place == nil {
		s.Place = &QueuePlace{}
	}
	return s.Place
}
