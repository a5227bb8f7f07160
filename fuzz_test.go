package mpd

import (
	"errors"
	"strings"
	"testing"

	"github.com/pior/mpd/proto"
)

// FuzzDecoders feeds arbitrary responses to the entity decoders. Decoding
// must either succeed or fail with a decode error, never panic.
// Run with: go test -fuzz='^FuzzDecoders$' -fuzztime=60s .
func FuzzDecoders(f *testing.F) {
	f.Add("file: a.flac\nId: 7\nPos: 3\nPrio: 1\nRange: 1.5-2\nTime: 10\nOK\n")
	f.Add("volume: -1\nstate: play\naudio: 48000:f:2\nelapsed: x\ntime: 1:2\nOK\n")
	f.Add("outputid: 0\noutputname: a\noutputenabled: 1\nOK\n")
	f.Add("mixrampdelay: nan\nduration: 1e400\nOK\n")
	f.Add("Range: --\nOK\n")

	f.Fuzz(func(t *testing.T, input string) {
		s := proto.NewScanner(proto.NewReader(strings.NewReader(input)))
		rec, err := s.Record()
		if err != nil {
			return
		}

		check := func(err error) {
			if err == nil {
				return
			}
			var perr *proto.ParseError
			var missing *proto.MissingFieldError
			if !errors.As(err, &perr) && !errors.As(err, &missing) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
		}

		_, err = SongDecoder.Decode(rec)
		check(err)
		_, err = StatusDecoder.Decode(rec)
		check(err)
		_, err = OutputDecoder.Decode(rec)
		check(err)
		_, err = StatsDecoder.Decode(rec)
		check(err)
		_, err = PluginDecoder.Decode(rec)
		check(err)
	})
}
