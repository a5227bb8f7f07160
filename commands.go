package mpd

import (
	"context"
	"strconv"
)

// Ping checks that the server answers.
func (c *Conn) Ping(ctx context.Context) error {
	return c.Exec(ctx, "ping")
}

// Password authenticates the connection.
func (c *Conn) Password(ctx context.Context, password string) error {
	return c.Exec(ctx, "password", password)
}

// Status returns the player status.
func (c *Conn) Status(ctx context.Context) (Status, error) {
	return Get(ctx, c, StatusDecoder, "status")
}

// ServerStats returns the server statistics.
func (c *Conn) ServerStats(ctx context.Context) (Stats, error) {
	return Get(ctx, c, StatsDecoder, "stats")
}

// CurrentSong returns the current song, or nil when there is none.
func (c *Conn) CurrentSong(ctx context.Context) (*Song, error) {
	songs, err := List(ctx, c, SongDecoder, "currentsong")
	if err != nil || len(songs) == 0 {
		return nil, err
	}
	return &songs[0], nil
}

// Queue returns the songs of the queue.
func (c *Conn) Queue(ctx context.Context) ([]Song, error) {
	return List(ctx, c, SongDecoder, "playlistinfo")
}

// QueueSongID returns the queued song with the given id.
func (c *Conn) QueueSongID(ctx context.Context, id SongID) (Song, error) {
	return Get(ctx, c, SongDecoder, "playlistid", strconv.FormatUint(uint64(id), 10))
}

// SetRange sets the portion of a queued song to play.
func (c *Conn) SetRange(ctx context.Context, id SongID, r Range) error {
	return c.Exec(ctx, "rangeid", strconv.FormatUint(uint64(id), 10), r.String())
}

// Outputs returns the audio outputs.
func (c *Conn) Outputs(ctx context.Context) ([]Output, error) {
	return List(ctx, c, OutputDecoder, "outputs")
}

// EnableOutput turns an output on.
func (c *Conn) EnableOutput(ctx context.Context, id uint32) error {
	return c.Exec(ctx, "enableoutput", strconv.FormatUint(uint64(id), 10))
}

// DisableOutput turns an output off.
func (c *Conn) DisableOutput(ctx context.Context, id uint32) error {
	return c.Exec(ctx, "disableoutput", strconv.FormatUint(uint64(id), 10))
}

// Playlists returns the stored playlists.
func (c *Conn) Playlists(ctx context.Context) ([]Playlist, error) {
	return List(ctx, c, PlaylistDecoder, "listplaylists")
}

// PlaylistSongs returns the songs of a stored playlist.
func (c *Conn) PlaylistSongs(ctx context.Context, name string) ([]Song, error) {
	return List(ctx, c, SongDecoder, "listplaylistinfo", name)
}

// Decoders returns the decoder plugins.
func (c *Conn) Decoders(ctx context.Context) ([]Plugin, error) {
	return List(ctx, c, PluginDecoder, "decoders")
}

// Mounts returns the mounted storages.
func (c *Conn) Mounts(ctx context.Context) ([]Mount, error) {
	return List(ctx, c, MountDecoder, "listmounts")
}

// Neighbors returns the storages found on the network.
func (c *Conn) Neighbors(ctx context.Context) ([]Neighbor, error) {
	return List(ctx, c, NeighborDecoder, "listneighbors")
}

// Channels returns the channels with at least one subscriber.
func (c *Conn) Channels(ctx context.Context) ([]Channel, error) {
	return List(ctx, c, ChannelDecoder, "channels")
}

// Subscribe subscribes the connection to a channel.
func (c *Conn) Subscribe(ctx context.Context, channel string) error {
	return c.Exec(ctx, "subscribe", channel)
}

// Unsubscribe leaves a channel.
func (c *Conn) Unsubscribe(ctx context.Context, channel string) error {
	return c.Exec(ctx, "unsubscribe", channel)
}

// ReadMessages returns and consumes the messages received on subscribed
// channels.
func (c *Conn) ReadMessages(ctx context.Context) ([]Message, error) {
	return List(ctx, c, MessageDecoder, "readmessages")
}

// SendMessage sends a message to a channel.
func (c *Conn) SendMessage(ctx context.Context, channel, message string) error {
	return c.Exec(ctx, "sendmessage", channel, message)
}

// Commands returns the commands the connection is allowed to use.
func (c *Conn) Commands(ctx context.Context) ([]string, error) {
	return c.Strings(ctx, "command", "commands")
}

// TagTypes returns the tag types the server reports in song records.
func (c *Conn) TagTypes(ctx context.Context) ([]string, error) {
	return c.Strings(ctx, "tagtype", "tagtypes")
}
