package mpd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pior/mpd/proto"
)

// StatusDecoder decodes the response of status.
var StatusDecoder = FromPairs[Status]("volume")

// State is the playback state.
type State int

const (
	StateStop State = iota
	StatePlay
	StatePause
)

// ParseState parses the state value of status.
func ParseState(s string) (State, error) {
	switch s {
	case "stop":
		return StateStop, nil
	case "play":
		return StatePlay, nil
	case "pause":
		return StatePause, nil
	}
	return 0, fmt.Errorf("unknown state %q", s)
}

func (s State) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StatePause:
		return "pause"
	default:
		return "stop"
	}
}

// ReplayGain is the replay gain mode.
type ReplayGain int

const (
	ReplayGainOff ReplayGain = iota
	ReplayGainTrack
	ReplayGainAlbum
	ReplayGainAuto
)

// ParseReplayGain parses a replay_gain_mode value.
func ParseReplayGain(s string) (ReplayGain, error) {
	switch s {
	case "off":
		return ReplayGainOff, nil
	case "track":
		return ReplayGainTrack, nil
	case "album":
		return ReplayGainAlbum, nil
	case "auto":
		return ReplayGainAuto, nil
	}
	return 0, fmt.Errorf("unknown replay gain mode %q", s)
}

func (g ReplayGain) String() string {
	switch g {
	case ReplayGainTrack:
		return "track"
	case ReplayGainAlbum:
		return "album"
	case ReplayGainAuto:
		return "auto"
	default:
		return "off"
	}
}

// AudioFormat is the "rate:bits:channels" format of the output. Bits is 0
// for floating point samples.
type AudioFormat struct {
	Rate  uint32
	Bits  uint8
	Chans uint8
}

// ParseAudioFormat parses "rate:bits:channels". Extra fields are ignored.
func ParseAudioFormat(s string) (AudioFormat, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return AudioFormat{}, errors.New("expected rate:bits:channels")
	}

	rate, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return AudioFormat{}, fmt.Errorf("rate: %w", err)
	}

	var bits uint64
	if parts[1] != "f" {
		bits, err = strconv.ParseUint(parts[1], 10, 8)
		if err != nil {
			return AudioFormat{}, fmt.Errorf("bits: %w", err)
		}
	}

	chans, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return AudioFormat{}, fmt.Errorf("channels: %w", err)
	}

	return AudioFormat{Rate: uint32(rate), Bits: uint8(bits), Chans: uint8(chans)}, nil
}

// PlayTime is the legacy "elapsed:total" time of status, in whole seconds.
type PlayTime struct {
	Elapsed time.Duration
	Total   time.Duration
}

// Status is the response of status. Unknown keys are ignored.
type Status struct {
	Volume       int // -1 when there is no mixer
	Repeat       bool
	Random       bool
	Single       bool
	Consume      bool
	QueueVersion uint32
	QueueLen     uint32
	State        State
	Song         *QueuePlace
	NextSong     *QueuePlace
	Time         *PlayTime
	Elapsed      *time.Duration
	Duration     *time.Duration
	Bitrate      *uint32
	Crossfade    *time.Duration
	MixRampDB    float64
	MixRampDelay *time.Duration
	Audio        *AudioFormat
	UpdatingDB   *uint32
	Error        string
	ReplayGain   *ReplayGain
	Partition    string
}

// DecodePair implements PairDecoder.
func (s *Status) DecodePair(p proto.Pair) error {
	switch p.Key {
	case "volume":
		v, err := strconv.ParseInt(p.Value, 10, 8)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.Volume = int(v)
	case "repeat":
		s.Repeat = p.Value == "1"
	case "random":
		s.Random = p.Value == "1"
	case "single":
		s.Single = p.Value == "1"
	case "consume":
		s.Consume = p.Value == "1"
	case "playlist":
		v, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.QueueVersion = v
	case "playlistlength":
		v, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.QueueLen = v
	case "state":
		st, err := ParseState(p.Value)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.State = st
	case "song":
		pos, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.Song = setPos(s.Song, pos)
	case "songid":
		id, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.Song = setID(s.Song, SongID(id))
	case "nextsong":
		pos, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.NextSong = setPos(s.NextSong, pos)
	case "nextsongid":
		id, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.NextSong = setID(s.NextSong, SongID(id))
	case "time":
		t, err := parsePlayTime(p.Value)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.Time = t
	case "elapsed":
		// A malformed elapsed value is reported as absent.
		if d, err := parseFractionalSeconds(p.Value); err == nil {
			s.Elapsed = &d
		}
	case "duration":
		d, err := parseFractionalSeconds(p.Value)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.Duration = &d
	case "bitrate":
		v, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.Bitrate = &v
	case "xfade":
		d, err := parseSeconds(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.Crossfade = &d
	case "mixrampdb":
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.MixRampDB = v
	case "mixrampdelay":
		// Sent as "nan" while MixRamp is disabled.
		if p.Value == "nan" {
			s.MixRampDelay = nil
			break
		}
		d, err := parseFractionalSeconds(p.Value)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.MixRampDelay = &d
	case "audio":
		af, err := ParseAudioFormat(p.Value)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.Audio = &af
	case "updating_db":
		v, err := parseUint32(p.Key, p.Value)
		if err != nil {
			return err
		}
		s.UpdatingDB = &v
	case "error":
		s.Error = p.Value
	case "replay_gain_mode":
		g, err := ParseReplayGain(p.Value)
		if err != nil {
			return badValue(p.Key, p.Value, err)
		}
		s.ReplayGain = &g
	case "partition":
		s.Partition = p.Value
	}
	return nil
}

// parsePlayTime parses "elapsed:total". A value without colon is absent.
func parsePlayTime(s string) (*PlayTime, error) {
	elapsedStr, totalStr, ok := strings.Cut(s, ":")
	if !ok {
		return nil, nil
	}
	elapsed, err := strconv.ParseUint(elapsedStr, 10, 32)
	if err != nil {
		return nil, err
	}
	total, err := strconv.ParseUint(totalStr, 10, 32)
	if err != nil {
		return nil, err
	}
	return &PlayTime{
		Elapsed: time.Duration(elapsed) * time.Second,
		Total:   time.Duration(total) * time.Second,
	}, nil
}

func setPos(place *QueuePlace, pos uint32) *QueuePlace {
	if place == nil {
		place = &QueuePlace{}
	}
	place.Pos = pos
	return place
}

func setID(place *QueuePlace, id SongID) *QueuePlace {
	if place == nil {
		place = &QueuePlace{}
	}
	place.ID = id
	return place
}
