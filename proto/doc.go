// Package proto provides a low-level wire protocol implementation for the
// Music Player Daemon (MPD) text protocol.
//
// This package serves as a foundation for the higher-level client in the
// parent package. It focuses on correctness of framing and parsing, without
// imposing decisions about entities or connection management.
//
// # Wire Format
//
// Commands are single lines of space-separated tokens, arguments
// double-quoted when needed:
//
//	playlistinfo
//	find "(Artist == \"Miles Davis\")"
//
// Responses are zero or more "key: value" lines, terminated by exactly one of:
//
//	OK
//	ACK [50@0] {play} song doesn't exist
//
// The greeting sent on connect is "OK MPD <version>".
//
// # Reading Responses
//
// Scanner yields the pairs of one response lazily and stops at the
// terminator without reading past it:
//
//	s := proto.NewScanner(proto.NewReader(conn))
//	for s.Next() {
//	    fmt.Println(s.Pair().Key, s.Pair().Value)
//	}
//	if err := s.Err(); err != nil {
//	    var ack *proto.AckError
//	    if errors.As(err, &ack) {
//	        // server rejected the command, connection still usable
//	    }
//	}
//
// A caller that stops early must call Drain before sending the next
// command.
//
// # Writing Commands
//
//	err := proto.WriteCommand(w, proto.NewCommand("add", "Jazz/So What.flac"))
//
// # Error Handling
//
// Errors carry the connection state through ShouldCloseConnection:
//
//   - AckError: well-formed server failure, connection reusable
//   - ParseError, MissingFieldError: decoding failure, connection reusable
//   - ProtocolError: malformed line, bad ACK, missing terminator, close
//   - ConnectionError: I/O failure, close
package proto
