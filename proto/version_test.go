package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBanner(t *testing.T) {
	tests := []struct {
		line    string
		want    Version
		wantErr bool
	}{
		{line: "OK MPD 0.23.5", want: Version{0, 23, 5}},
		{line: "OK MPD 0.21", want: Version{0, 21, 0}},
		{line: "OK MPD 1.0.0", want: Version{1, 0, 0}},
		{line: "OK", wantErr: true},
		{line: "OK MPD ", wantErr: true},
		{line: "OK MPD 0", wantErr: true},
		{line: "OK MPD 0.x.1", wantErr: true},
		{line: "OK MPD 0.1.2.3", wantErr: true},
		{line: "ACK [5@0] {} nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseBanner(tt.line)
			if tt.wantErr {
				var perr *ProtocolError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, KindBadBanner, perr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersion_AtLeast(t *testing.T) {
	v := Version{0, 23, 5}
	assert.True(t, v.AtLeast(0, 23, 5))
	assert.True(t, v.AtLeast(0, 22, 9))
	assert.False(t, v.AtLeast(0, 23, 6))
	assert.False(t, v.AtLeast(1, 0, 0))
	assert.Equal(t, "0.23.5", v.String())
}

func TestRecord_Split(t *testing.T) {
	rec := Record{
		{Key: "directory", Value: "Jazz"},
		{Key: "file", Value: "a.mp3"},
		{Key: "Title", Value: "A"},
		{Key: "file", Value: "b.mp3"},
	}

	head, records := rec.Split("file")
	assert.Equal(t, Record{{Key: "directory", Value: "Jazz"}}, head)
	require.Len(t, records, 2)
	assert.Equal(t, Record{{Key: "file", Value: "a.mp3"}, {Key: "Title", Value: "A"}}, records[0])
	assert.Equal(t, Record{{Key: "file", Value: "b.mp3"}}, records[1])

	head, records = Record{{Key: "Title", Value: "x"}}.Split("file")
	assert.Len(t, head, 1)
	assert.Empty(t, records)
}

func TestRecord_GetValues(t *testing.T) {
	rec := Record{{Key: "suffix", Value: "mp3"}, {Key: "plugin", Value: "mad"}, {Key: "suffix", Value: "mp2"}}

	v, ok := rec.Get("suffix")
	assert.True(t, ok)
	assert.Equal(t, "mp3", v)
	_, ok = rec.Get("mime_type")
	assert.False(t, ok)
	assert.Equal(t, []string{"mp3", "mp2"}, rec.Values("suffix"))
	assert.Nil(t, rec.Values("mime_type"))
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair("Title: Blue in Green")
	require.NoError(t, err)
	assert.Equal(t, Pair{Key: "Title", Value: "Blue in Green"}, p)

	p, err = ParsePair("error: ")
	require.NoError(t, err)
	assert.Equal(t, Pair{Key: "error", Value: ""}, p)

	for _, line := range []string{"Title:nospace", "no separator", ": value"} {
		_, err := ParsePair(line)
		var perr *ProtocolError
		require.ErrorAs(t, err, &perr, line)
		assert.Equal(t, KindBadPair, perr.Kind)
	}
}
