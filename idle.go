package mpd

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/pior/mpd/proto"
)

var (
	// ErrAlreadyIdle is returned by Idle while another idle wait is
	// outstanding on the same connection.
	ErrAlreadyIdle = errors.New("mpd: idle already in progress")

	// ErrNotIdle is returned by NoIdle when no idle wait is outstanding.
	ErrNotIdle = errors.New("mpd: not idle")
)

// Subsystem names a part of the server whose changes idle reports.
// Names the server sends that are not listed here are passed through.
type Subsystem string

const (
	SubsystemDatabase       Subsystem = "database"
	SubsystemUpdate         Subsystem = "update"
	SubsystemStoredPlaylist Subsystem = "stored_playlist"
	SubsystemQueue          Subsystem = "playlist"
	SubsystemPlayer         Subsystem = "player"
	SubsystemMixer          Subsystem = "mixer"
	SubsystemOutput         Subsystem = "output"
	SubsystemOptions        Subsystem = "options"
	SubsystemPartition      Subsystem = "partition"
	SubsystemSticker        Subsystem = "sticker"
	SubsystemSubscription   Subsystem = "subscription"
	SubsystemMessage        Subsystem = "message"
	SubsystemNeighbor       Subsystem = "neighbor"
	SubsystemMount          Subsystem = "mount"
)

// idleWait is the cancellation signal of one outstanding idle.
type idleWait struct {
	cancel chan struct{}
	once   sync.Once
}

func (w *idleWait) stop() {
	w.once.Do(func() { close(w.cancel) })
}

// Idle blocks until one of the given subsystems changes, or any subsystem
// when none is given, and returns the changed subsystems without
// duplicates.
//
// The wait ends early when ctx is done or NoIdle is called from another
// goroutine: noidle is then sent and whatever the server reported is
// returned. An empty result is valid. When ctx ended the wait, its error
// is returned along with the result.
//
// Commands issued from other goroutines block until Idle returns.
func (c *Conn) Idle(ctx context.Context, subsystems ...Subsystem) ([]Subsystem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.idle.Load() != nil {
		return nil, ErrAlreadyIdle
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return nil, ErrConnClosed
	}

	w := &idleWait{cancel: make(chan struct{})}
	if !c.idle.CompareAndSwap(nil, w) {
		return nil, ErrAlreadyIdle
	}
	defer c.idle.Store(nil)

	args := lo.Map(subsystems, func(s Subsystem, _ int) string { return string(s) })

	// The wait may last indefinitely.
	c.conn.SetDeadline(time.Time{})

	if err := proto.WriteCommand(c.writer, proto.NewCommand(proto.CmdIdle, args...)); err != nil {
		return nil, c.handleError(proto.CmdIdle, err)
	}
	c.stats.recordIdle()
	c.logger.Debug("mpd: idle", "subsystems", args)

	done := make(chan struct{})
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- c.watchIdle(ctx, w, done)
	}()

	changed, err := c.readIdle()
	c.touch()
	close(done)
	noidleErr := <-watchErr

	if err != nil {
		return nil, c.handleError(proto.CmdIdle, err)
	}
	if noidleErr != nil {
		return nil, c.handleError(proto.CmdNoIdle, noidleErr)
	}

	c.logger.Debug("mpd: idle returned", "changed", changed)
	if err := ctx.Err(); err != nil {
		return changed, err
	}
	return changed, nil
}

// NoIdle interrupts the outstanding Idle call. It is safe to call from any
// goroutine and returns ErrNotIdle when no idle wait is outstanding.
func (c *Conn) NoIdle() error {
	w := c.idle.Load()
	if w == nil {
		return ErrNotIdle
	}
	w.stop()
	return nil
}

// watchIdle sends noidle when the wait is cancelled before the server
// answered. A noidle arriving after the answer is ignored by the server.
func (c *Conn) watchIdle(ctx context.Context, w *idleWait, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-w.cancel:
	case <-ctx.Done():
	}

	c.stats.recordIdleCancel()
	c.logger.Debug("mpd: noidle")
	if err := proto.WriteCommand(c.writer, proto.NewCommand(proto.CmdNoIdle)); err != nil {
		return err
	}
	if c.timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	}
	return nil
}

// readIdle reads the "changed: <subsystem>" lines of an idle response.
func (c *Conn) readIdle() ([]Subsystem, error) {
	s := proto.NewScanner(c.reader)

	var changed []Subsystem
	for s.Next() {
		p := s.Pair()
		if p.Key != "changed" {
			s.Drain()
			return nil, &proto.ProtocolError{
				Kind: proto.KindUnexpectedKey,
				Line: p.Key + proto.Separator + p.Value,
			}
		}
		changed = append(changed, Subsystem(p.Value))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lo.Uniq(changed), nil
}
