// Package mpd is a client for the Music Player Daemon.
//
// A Conn owns one socket. Commands are written one at a time and each
// response is read up to its terminator before the call returns:
//
//	conn, err := mpd.Dial(ctx, "tcp", "localhost:6600", mpd.Config{})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	status, err := conn.Status(ctx)
//
// Responses are turned into values by a Decoder. FromPairs builds one for
// records with repeated or ordered keys (songs, status), FromMap for
// records whose keys appear at most once (outputs, stats). Get decodes a
// whole response, List cuts it into records at the decoder's start key:
//
//	songs, err := mpd.List(ctx, conn, mpd.SongDecoder, "find", "(Artist == \"Miles Davis\")")
//
// # Idle
//
// Idle blocks until a subsystem changes. It ends early when its context is
// done or NoIdle is called from another goroutine:
//
//	go func() {
//	    <-stop
//	    conn.NoIdle()
//	}()
//	changed, err := conn.Idle(ctx, mpd.SubsystemPlayer, mpd.SubsystemMixer)
//
// # Errors
//
// Errors come from package proto. A rejected command is an
// *proto.AckError and leaves the connection usable. A failed read or write
// is a *proto.ConnectionError and closes the connection; later calls
// return ErrConnClosed.
package mpd
