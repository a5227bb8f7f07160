package proto

import (
	"errors"
	"fmt"
	"strconv"
)

// Error types for MPD protocol operations.
// Like the server's own taxonomy, they tell the caller whether the
// connection framing is still trustworthy after the failure.

// ErrInvalidArgument is returned when a command argument cannot be encoded
// on a single protocol line. Nothing is written to the connection.
var ErrInvalidArgument = errors.New("mpd: invalid argument")

// AckError is a well-formed failure response from the server:
//
//	ACK [<code>@<index>] {<command>} <message>
//
// CommandIndex is the position of the failing command inside a command
// list, and zero for a single command.
//
// Connection handling: the response is fully consumed, the connection can be
// REUSED.
type AckError struct {
	Code         AckCode
	CommandIndex int
	Command      string
	Message      string
}

func (e *AckError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("mpd: ack [%d@%d]: %s", e.Code, e.CommandIndex, e.Message)
	}
	return fmt.Sprintf("mpd: ack [%d@%d] {%s}: %s", e.Code, e.CommandIndex, e.Command, e.Message)
}

// ShouldCloseConnection returns false - the server reported the failure
// through a complete response.
func (e *AckError) ShouldCloseConnection() bool {
	return false
}

// ErrorKind classifies a ProtocolError.
type ErrorKind int

const (
	// KindBadPair is a response line that is neither a terminator nor a
	// "key: value" pair.
	KindBadPair ErrorKind = iota + 1

	// KindBadAck is a line starting with "ACK " that does not follow the ACK
	// grammar. This usually means a protocol version mismatch.
	KindBadAck

	// KindNoTerminator means the stream ended before OK or ACK.
	KindNoTerminator

	// KindBadBanner is a connection greeting that is not "OK MPD <version>".
	KindBadBanner

	// KindUnexpectedKey is a pair that does not belong to the expected
	// response shape.
	KindUnexpectedKey
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadPair:
		return "malformed line"
	case KindBadAck:
		return "malformed ack"
	case KindNoTerminator:
		return "missing terminator"
	case KindBadBanner:
		return "malformed banner"
	case KindUnexpectedKey:
		return "unexpected key"
	default:
		return "kind " + strconv.Itoa(int(k))
	}
}

// ProtocolError means the peer sent something this client cannot frame.
//
// Common causes:
//   - Line without ": " separator
//   - Malformed ACK line
//   - Connection closed in the middle of a response
//   - Unexpected record shape
//
// Connection handling: framing state is uncertain, CLOSE the connection.
// Scanner.Drain skips to the next terminator, so a caller that keeps the
// connection, as Conn does for every kind but KindNoTerminator, does so on
// a resynchronized stream.
type ProtocolError struct {
	Kind ErrorKind
	Line string // offending line, if any
	Err  error  // underlying error, if any
}

func (e *ProtocolError) Error() string {
	msg := "mpd: protocol error: " + e.Kind.String()
	if e.Line != "" {
		msg += ": " + strconv.Quote(e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true - framing cannot be trusted anymore
func (e *ProtocolError) ShouldCloseConnection() bool {
	return true
}

// ParseError is a recognized field whose value does not convert to the
// expected type. Key and Value carry the raw pair for diagnostics.
//
// Connection handling: the response was drained, the connection can be
// REUSED.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mpd: bad value for %q: %q: %v", e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("mpd: bad value for %q: %q", e.Key, e.Value)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns false - decoding happens after framing
func (e *ParseError) ShouldCloseConnection() bool {
	return false
}

// MissingFieldError is a required key absent from a record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "mpd: missing field " + strconv.Quote(e.Field)
}

// ShouldCloseConnection returns false - decoding happens after framing
func (e *MissingFieldError) ShouldCloseConnection() bool {
	return false
}

// ConnectionError wraps underlying I/O errors from connection operations.
// Used to distinguish network/connection issues from protocol errors.
//
// Connection handling: connection is already broken, CLOSE it. Reconnecting
// is up to the caller.
type ConnectionError struct {
	Op  string // Operation that failed (read, write, dial)
	Err error  // Underlying error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mpd: connection error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true - connection errors mean connection is broken
func (e *ConnectionError) ShouldCloseConnection() bool {
	return true
}

// ErrorWithConnectionState is an interface for errors that indicate
// whether the connection should be closed.
// Implemented by all protocol error types.
type ErrorWithConnectionState interface {
	error
	ShouldCloseConnection() bool
}

// ShouldCloseConnection is a helper function to determine if an error
// requires closing the connection.
//
// Returns true for:
//   - ProtocolError
//   - ConnectionError
//   - unknown error types
//
// Returns false for:
//   - AckError
//   - ParseError, MissingFieldError
//   - ErrInvalidArgument
//   - nil
func ShouldCloseConnection(err error) bool {
	if err == nil || errors.Is(err, ErrInvalidArgument) {
		return false
	}

	var e ErrorWithConnectionState
	if errors.As(err, &e) {
		return e.ShouldCloseConnection()
	}

	// Unknown error type - be conservative and close connection
	return true
}

// IsAck reports whether err is an AckError carrying code.
func IsAck(err error, code AckCode) bool {
	var ack *AckError
	return errors.As(err, &ack) && ack.Code == code
}
