package mpd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pior/mpd/internal/testutils"
	"github.com/pior/mpd/proto"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestConn(t *testing.T, responses ...string) (*Conn, *testutils.ConnectionMock) {
	t.Helper()
	mock := testutils.NewServerMock(responses...)
	c, err := NewConn(context.Background(), mock, Config{Logger: discardLogger})
	require.NoError(t, err)
	return c, mock
}

func TestNewConn_Banner(t *testing.T) {
	c, _ := newTestConn(t)
	assert.Equal(t, proto.Version{Major: 0, Minor: 23, Patch: 5}, c.Version())
	assert.Equal(t, "127.0.0.1:6600", c.Addr())
	assert.False(t, c.IsClosed())
}

func TestNewConn_BadBanner(t *testing.T) {
	mock := testutils.NewConnectionMock("ACK [4@0] {} you don't have permission\n")
	_, err := NewConn(context.Background(), mock, Config{Logger: discardLogger})

	var perr *proto.ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, proto.KindBadBanner, perr.Kind)
}

func TestConn_Exec(t *testing.T) {
	c, mock := newTestConn(t, "OK\n")

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, []string{"ping"}, mock.GetWrittenCommands())
	assert.Equal(t, uint64(1), c.Stats().Commands)
}

func TestConn_AckKeepsConnection(t *testing.T) {
	c, mock := newTestConn(t,
		"ACK [50@0] {play} song doesn't exist: \"99\"\n",
		"OK\n",
	)
	ctx := context.Background()

	err := c.Exec(ctx, "play", "99")
	var ack *proto.AckError
	require.ErrorAs(t, err, &ack)
	assert.Equal(t, proto.AckNoExist, ack.Code)
	assert.Equal(t, 0, ack.CommandIndex)
	assert.Equal(t, "play", ack.Command)
	assert.Equal(t, `song doesn't exist: "99"`, ack.Message)
	assert.False(t, c.IsClosed())

	require.NoError(t, c.Exec(ctx, "play", "0"))
	assert.Equal(t, []string{"play 99", "play 0"}, mock.GetWrittenCommands())

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Commands)
	assert.Equal(t, uint64(1), stats.Acks)
}

func TestConn_InvalidArgument(t *testing.T) {
	c, mock := newTestConn(t)

	err := c.Exec(context.Background(), "add", "a\nstop")
	require.ErrorIs(t, err, proto.ErrInvalidArgument)
	assert.Empty(t, mock.GetWrittenRequest())
	assert.False(t, c.IsClosed())
}

func TestConn_ReadFailureClosesConnection(t *testing.T) {
	c, mock := newTestConn(t)
	mock.ReadErr = errors.New("connection reset by peer")
	ctx := context.Background()

	err := c.Ping(ctx)
	var cerr *proto.ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "read", cerr.Op)
	assert.True(t, c.IsClosed())
	assert.True(t, mock.IsClosed())
	assert.Equal(t, uint64(1), c.Stats().ConnErrors)

	require.ErrorIs(t, c.Ping(ctx), ErrConnClosed)
}

func TestConn_WriteFailureClosesConnection(t *testing.T) {
	c, mock := newTestConn(t)
	mock.WriteErr = errors.New("broken pipe")

	err := c.Ping(context.Background())
	var cerr *proto.ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "write", cerr.Op)
	assert.True(t, c.IsClosed())
}

func TestConn_MissingTerminator(t *testing.T) {
	c, _ := newTestConn(t, "volume: 80\nstate: play\n")

	status, err := c.Status(context.Background())
	var perr *proto.ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, proto.KindNoTerminator, perr.Kind)
	assert.Equal(t, Status{}, status, "no partial entity")
	assert.True(t, c.IsClosed())
}

func TestConn_BadPairResynchronizes(t *testing.T) {
	c, _ := newTestConn(t,
		"volume: 80\ngarbage\nstate: play\nOK\n",
		"OK\n",
	)
	ctx := context.Background()

	_, err := c.Status(ctx)
	var perr *proto.ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, proto.KindBadPair, perr.Kind)
	assert.False(t, c.IsClosed())
	assert.Equal(t, uint64(1), c.Stats().ProtocolErrors)

	require.NoError(t, c.Ping(ctx))
}

func TestConn_ParseErrorDrainsResponse(t *testing.T) {
	c, _ := newTestConn(t,
		"outputid: x\noutputname: a\noutputenabled: 1\noutputid: 1\noutputname: b\noutputenabled: 0\nOK\n",
		"OK\n",
	)
	ctx := context.Background()

	outputs, err := c.Outputs(ctx)
	var perr *proto.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Nil(t, outputs)
	assert.False(t, c.IsClosed())

	require.NoError(t, c.Ping(ctx))
}

func TestConn_ContextCancelled(t *testing.T) {
	c, mock := newTestConn(t, "OK\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, c.Ping(ctx), context.Canceled)
	assert.Empty(t, mock.GetWrittenRequest())
}

func TestConn_ContextCancelInterruptsRead(t *testing.T) {
	s := newFakeServer(t, func(cmd string) string {
		if cmd == "status" {
			return "" // never answered
		}
		return "OK\n"
	})
	c, err := Dial(context.Background(), "tcp", s.addr(), Config{Logger: discardLogger})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err = c.Status(ctx)

	require.ErrorIs(t, err, context.Canceled)
	var cerr *proto.ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, c.IsClosed())
	assert.False(t, isServerFailure(err))
}

func TestConn_ContextCancelAfterResponse(t *testing.T) {
	c, _ := newTestConn(t, "OK\n", "OK\n")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Ping(ctx))
	cancel()

	require.NoError(t, c.Ping(context.Background()))
	assert.False(t, c.IsClosed())
}

func TestConn_Close(t *testing.T) {
	c, mock := newTestConn(t, "OK\n")

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, mock.IsClosed())
	require.ErrorIs(t, c.Ping(context.Background()), ErrConnClosed)
}

func TestConn_LastUsed(t *testing.T) {
	before := time.Now().Add(-time.Second)
	c, _ := newTestConn(t, "OK\n")

	greeted := c.LastUsed()
	assert.True(t, greeted.After(before), "LastUsed() = %v, want after %v", greeted, before)

	require.NoError(t, c.Ping(context.Background()))
	assert.False(t, c.LastUsed().Before(greeted))
	assert.WithinDuration(t, time.Now(), c.LastUsed(), time.Second)
}

func TestList(t *testing.T) {
	c, mock := newTestConn(t,
		"file: a.flac\nTitle: A\nPos: 0\nId: 10\n"+
			"file: b.flac\nTitle: B\nPos: 1\nId: 11\nOK\n",
		"OK\n",
	)
	ctx := context.Background()

	songs, err := c.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "a.flac", songs[0].File)
	assert.Equal(t, &QueuePlace{ID: 10, Pos: 0}, songs[0].Place)
	assert.Equal(t, "B", songs[1].Title)

	songs, err = c.Queue(ctx)
	require.NoError(t, err)
	assert.Empty(t, songs)

	assert.Equal(t, []string{"playlistinfo", "playlistinfo"}, mock.GetWrittenCommands())
}

func TestList_UnexpectedShape(t *testing.T) {
	c, _ := newTestConn(t, "directory: Jazz\nfile: a.flac\nOK\n", "OK\n")
	ctx := context.Background()

	_, err := List(ctx, c, SongDecoder, "lsinfo")
	var perr *proto.ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, proto.KindUnexpectedKey, perr.Kind)
	assert.Equal(t, "directory: Jazz", perr.Line)

	require.NoError(t, c.Ping(ctx))
}

func TestGet(t *testing.T) {
	c, mock := newTestConn(t, "file: a.flac\nId: 4\nPos: 2\nOK\n")

	song, err := c.QueueSongID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "a.flac", song.File)
	assert.Equal(t, []string{"playlistid 4"}, mock.GetWrittenCommands())
}

func TestCurrentSong(t *testing.T) {
	c, _ := newTestConn(t, "OK\n", "file: a.flac\nOK\n")
	ctx := context.Background()

	song, err := c.CurrentSong(ctx)
	require.NoError(t, err)
	assert.Nil(t, song)

	song, err = c.CurrentSong(ctx)
	require.NoError(t, err)
	require.NotNil(t, song)
	assert.Equal(t, "a.flac", song.File)
}

func TestStrings(t *testing.T) {
	c, _ := newTestConn(t, "command: add\ncommand: play\nother: x\ncommand: stop\nOK\n")

	cmds, err := c.Commands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"add", "play", "stop"}, cmds)
}

func TestConn_Commands(t *testing.T) {
	c, mock := newTestConn(t, "OK\n", "OK\n", "OK\n", "OK\n", "OK\n")
	ctx := context.Background()

	require.NoError(t, c.SetRange(ctx, 7, Range{Start: 1500 * time.Millisecond}))
	require.NoError(t, c.EnableOutput(ctx, 1))
	require.NoError(t, c.Subscribe(ctx, "ratings"))
	require.NoError(t, c.SendMessage(ctx, "ratings", "5 stars"))
	_, err := c.PlaylistSongs(ctx, "my list")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"rangeid 7 1.5:",
		"enableoutput 1",
		"subscribe ratings",
		`sendmessage ratings "5 stars"`,
		`listplaylistinfo "my list"`,
	}, mock.GetWrittenCommands())
}
