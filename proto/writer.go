package proto

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pior/mpd/internal/bufpool"
)

// Typical command is well under 128 bytes; huge "add" lines stay out of the pool.
var bufferPool = bufpool.New(128, 64*1024)

// Command is one protocol command line: a name followed by arguments.
type Command struct {
	Name string
	Args []string
}

// NewCommand builds a Command.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

func (c Command) String() string {
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)
	appendCommand(buf, c)
	return strings.TrimSuffix(buf.String(), LF)
}

// Validate checks that c can be written as a single protocol line.
func (c Command) Validate() error {
	if c.Name == "" || strings.ContainsAny(c.Name, " \t\r\n\"") {
		return fmt.Errorf("%w: command name %q", ErrInvalidArgument, c.Name)
	}
	for _, arg := range c.Args {
		if strings.ContainsAny(arg, "\r\n") {
			return fmt.Errorf("%w: %q contains a line break", ErrInvalidArgument, arg)
		}
	}
	return nil
}

// Quote returns arg in wire form. Arguments that are empty or contain
// whitespace, quotes or backslashes are double-quoted, with '"' and '\'
// escaped by a backslash. Plain tokens are returned unchanged.
func Quote(arg string) string {
	if !needsQuote(arg) {
		return arg
	}
	var b strings.Builder
	b.Grow(len(arg) + 2)
	writeQuoted(&b, arg)
	return b.String()
}

func needsQuote(arg string) bool {
	return arg == "" || strings.ContainsAny(arg, " \t\"'\\")
}

type byteStringWriter interface {
	WriteByte(c byte) error
	WriteString(s string) (int, error)
}

func writeQuoted(w byteStringWriter, arg string) {
	w.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if c == '"' || c == '\\' {
			w.WriteByte('\\')
		}
		w.WriteByte(c)
	}
	w.WriteByte('"')
}

func appendCommand(w byteStringWriter, c Command) {
	w.WriteString(c.Name)
	for _, arg := range c.Args {
		w.WriteString(Space)
		if needsQuote(arg) {
			writeQuoted(w, arg)
		} else {
			w.WriteString(arg)
		}
	}
	w.WriteString(LF)
}

// WriteCommand serializes cmds to w, one line each.
// Every command is validated before anything is written, so an invalid
// argument never leaves a partial line on the connection.
//
// A *bufio.Writer is flushed once at the end.
// Write failures are returned as *ConnectionError.
func WriteCommand(w io.Writer, cmds ...Command) error {
	for _, c := range cmds {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	// Optimize for bufio.Writer (used by Conn)
	if bw, ok := w.(*bufio.Writer); ok {
		for _, c := range cmds {
			appendCommand(bw, c)
		}
		if err := bw.Flush(); err != nil {
			return &ConnectionError{Op: "write", Err: err}
		}
		return nil
	}

	// Fallback to bytes.Buffer approach for other writers (tests, etc.)
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)
	for _, c := range cmds {
		appendCommand(buf, c)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	return nil
}

// WriteCommandList frames cmds between command_list_ok_begin and
// command_list_end. The server answers with one "list_OK" per successful
// command followed by "OK", or stops at the first ACK.
func WriteCommandList(w io.Writer, cmds ...Command) error {
	framed := make([]Command, 0, len(cmds)+2)
	framed = append(framed, NewCommand(CmdListOKBegin))
	framed = append(framed, cmds...)
	framed = append(framed, NewCommand(CmdListEnd))
	return WriteCommand(w, framed...)
}
