package mpd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pior/mpd/internal/coarsetime"
	"github.com/pior/mpd/proto"
)

var (
	// ErrConnClosed is returned by every operation once the connection
	// was closed, either by Close or after a connectivity failure.
	ErrConnClosed = errors.New("mpd: connection closed")
)

// Config holds the settings of a connection.
type Config struct {
	// Timeout bounds each command round trip when the context carries no
	// deadline. Zero means no limit. Idle waits are never bounded by it.
	Timeout time.Duration

	// Password is sent right after the greeting when non-empty.
	Password string

	// Dialer is used by Dial to open the socket.
	// If nil, the default net.Dialer is used.
	Dialer *net.Dialer

	// Logger receives connection diagnostics.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// NewCircuitBreaker creates the circuit breaker guarding the server.
	// Called once per connection with the server address.
	// If nil, no circuit breaker is used.
	NewCircuitBreaker func(serverAddr string) *gobreaker.CircuitBreaker[struct{}]
}

// Conn is a single MPD connection. Commands are sent one at a time and
// each response is read to its terminator before the next command goes
// out, so a Conn is safe for concurrent use: callers are serialized.
type Conn struct {
	addr    string
	conn    net.Conn
	reader  *proto.Reader
	writer  *bufio.Writer
	version proto.Version
	timeout time.Duration
	logger  *slog.Logger
	breaker *gobreaker.CircuitBreaker[struct{}]
	stats   *connStatsCollector

	mu       sync.Mutex
	closed   atomic.Bool
	idle     atomic.Pointer[idleWait]
	lastUsed atomic.Int64 // unix nanoseconds
}

// Dial connects to the MPD server at addr, reads its greeting and, when
// configured, authenticates.
func Dial(ctx context.Context, network, addr string, config Config) (*Conn, error) {
	dialer := config.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	nc, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, &proto.ConnectionError{Op: "dial", Err: err}
	}

	c, err := NewConn(ctx, nc, config)
	if err != nil {
		nc.Close()
		return nil, err
	}

	if config.Password != "" {
		if err := c.Password(ctx, config.Password); err != nil {
			c.Close()
			return nil, err
		}
	}

	return c, nil
}

// NewConn wraps an established socket and reads the server greeting.
// It does not send the password; Dial does.
func NewConn(ctx context.Context, nc net.Conn, config Config) (*Conn, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	addr := nc.RemoteAddr().String()
	c := &Conn{
		addr:    addr,
		conn:    nc,
		reader:  proto.NewReader(nc),
		writer:  bufio.NewWriter(nc),
		timeout: config.Timeout,
		logger:  logger.With("addr", addr),
		stats:   newConnStatsCollector(),
	}
	if config.NewCircuitBreaker != nil {
		c.breaker = config.NewCircuitBreaker(addr)
	}

	c.setDeadline(ctx)
	version, err := proto.ReadBanner(c.reader)
	if err != nil {
		c.logger.Error("mpd: bad greeting", "error", err)
		return nil, err
	}
	c.version = version
	c.touch()
	c.logger.Debug("mpd: connected", "version", version.String())

	return c, nil
}

// Version returns the protocol version announced by the server.
func (c *Conn) Version() proto.Version {
	return c.version
}

// Addr returns the server address.
func (c *Conn) Addr() string {
	return c.addr
}

// Stats returns a snapshot of the connection counters.
func (c *Conn) Stats() ConnStats {
	return c.stats.snapshot()
}

// LastUsed returns when the last response was received, with a coarse
// resolution. MPD drops connections left silent for longer than its
// connection_timeout, 60s by default; an idle wait keeps it alive.
func (c *Conn) LastUsed() time.Time {
	return time.Unix(0, c.lastUsed.Load())
}

func (c *Conn) touch() {
	c.lastUsed.Store(coarsetime.Now().UnixNano())
}

// IsClosed reports whether the connection can no longer be used.
func (c *Conn) IsClosed() bool {
	return c.closed.Load()
}

// Close closes the connection. It may be called while another goroutine
// is blocked in a command or in Idle; that call then fails.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.conn.Close()
}

// Exec sends a command and discards the pairs of its response.
//
// Every command method is bounded by the ctx deadline, or Config.Timeout
// when ctx has none, and returns early when ctx is cancelled.
func (c *Conn) Exec(ctx context.Context, name string, args ...string) error {
	return c.run(ctx, name, func(w *bufio.Writer) error {
		return proto.WriteCommand(w, proto.NewCommand(name, args...))
	}, func(s *proto.Scanner) error {
		return s.Drain()
	})
}

// Get sends a command and decodes its whole response as one record.
func Get[T any](ctx context.Context, c *Conn, dec Decoder[T], name string, args ...string) (T, error) {
	var out T
	err := c.run(ctx, name, func(w *bufio.Writer) error {
		return proto.WriteCommand(w, proto.NewCommand(name, args...))
	}, func(s *proto.Scanner) error {
		rec, err := s.Record()
		if err != nil {
			return err
		}
		out, err = dec.Decode(rec)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// List sends a command and decodes its response as a list of records, each
// starting at the decoder's start key. An empty response yields an empty
// list.
func List[T any](ctx context.Context, c *Conn, dec Decoder[T], name string, args ...string) ([]T, error) {
	var out []T
	err := c.run(ctx, name, func(w *bufio.Writer) error {
		return proto.WriteCommand(w, proto.NewCommand(name, args...))
	}, func(s *proto.Scanner) error {
		rec, err := s.Record()
		if err != nil {
			return err
		}

		head, records := rec.Split(dec.StartKey())
		if len(head) > 0 {
			return &proto.ProtocolError{
				Kind: proto.KindUnexpectedKey,
				Line: head[0].Key + proto.Separator + head[0].Value,
			}
		}

		out = make([]T, 0, len(records))
		for _, r := range records {
			v, err := dec.Decode(r)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Strings sends a command and returns every value of key in its response.
// Other keys are ignored.
func (c *Conn) Strings(ctx context.Context, key, name string, args ...string) ([]string, error) {
	var out []string
	err := c.run(ctx, name, func(w *bufio.Writer) error {
		return proto.WriteCommand(w, proto.NewCommand(name, args...))
	}, func(s *proto.Scanner) error {
		for p, err := range s.All() {
			if err != nil {
				return err
			}
			if p.Key == key {
				out = append(out, p.Value)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// run executes one round trip through the circuit breaker.
func (c *Conn) run(ctx context.Context, name string, write func(*bufio.Writer) error, read func(*proto.Scanner) error) error {
	if c.breaker == nil {
		return c.roundTrip(ctx, name, write, read)
	}

	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.roundTrip(ctx, name, write, read)
	})
	return err
}

// roundTrip writes a request and reads its response up to the terminator.
// The response is always consumed entirely, whatever read returns, so the
// next command starts on a clean stream.
//
// Cancelling ctx mid-exchange expires the socket deadline. The response is
// then lost, so the connection is closed and the error wraps ctx.Err().
func (c *Conn) roundTrip(ctx context.Context, name string, write func(*bufio.Writer) error, read func(*proto.Scanner) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return ErrConnClosed
	}

	c.setDeadline(ctx)
	defer c.interruptOnCancel(ctx)()

	err := c.exchange(name, write, read)
	var cerr *proto.ConnectionError
	if ctx.Err() != nil && errors.As(err, &cerr) {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

// interruptOnCancel unblocks socket I/O when ctx is cancelled. The returned
// function must be called before the next exchange.
func (c *Conn) interruptOnCancel(ctx context.Context) func() {
	if ctx.Done() == nil {
		return func() {}
	}

	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		c.conn.SetDeadline(time.Now())
	})
	return func() {
		if !stop() {
			<-fired
		}
	}
}

func (c *Conn) exchange(name string, write func(*bufio.Writer) error, read func(*proto.Scanner) error) error {
	c.stats.recordCommand()
	c.logger.Debug("mpd: command", "command", name)

	if err := write(c.writer); err != nil {
		return c.handleError(name, err)
	}

	s := proto.NewScanner(c.reader)
	readErr := read(s)
	err := s.Drain()
	if s.Done() {
		c.touch()
	}
	if err != nil {
		return c.handleError(name, err)
	}
	if readErr != nil {
		return c.handleError(name, readErr)
	}
	return nil
}

// setDeadline copies the context deadline to the socket, falling back to
// the configured timeout.
func (c *Conn) setDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else if c.timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.timeout))
	} else {
		c.conn.SetDeadline(time.Time{})
	}
}

// handleError records err and marks the connection closed when the stream
// can no longer be trusted.
func (c *Conn) handleError(name string, err error) error {
	var ack *proto.AckError
	var perr *proto.ProtocolError
	var cerr *proto.ConnectionError

	switch {
	case errors.As(err, &ack):
		c.stats.recordAck()
		c.logger.Debug("mpd: command failed", "command", name, "code", ack.Code.String(), "message", ack.Message)
	case errors.As(err, &perr):
		c.stats.recordProtocolError()
		c.logger.Error("mpd: protocol error", "command", name, "kind", perr.Kind.String(), "line", perr.Line)
		if perr.Kind == proto.KindNoTerminator {
			c.markClosed()
		}
	case errors.As(err, &cerr):
		c.stats.recordConnError()
		c.logger.Error("mpd: connection error", "command", name, "op", cerr.Op, "error", cerr.Err)
		c.markClosed()
	}
	return err
}

func (c *Conn) markClosed() {
	if !c.closed.Swap(true) {
		c.conn.Close()
	}
}
