package testutils

import (
	"bytes"
	"net"
	"strings"
	"sync"
	"time"
)

// DefaultBanner is the greeting ConnectionMock sends first when created
// with NewServerMock.
const DefaultBanner = "OK MPD 0.23.5\n"

// ConnectionMock is a mock implementation of net.Conn for testing.
// Reads are served from the scripted responses; writes are recorded.
type ConnectionMock struct {
	mu       sync.Mutex
	readBuf  *bytes.Buffer
	writeBuf *bytes.Buffer
	closed   bool

	// ReadErr and WriteErr, when set, are returned instead of doing I/O.
	ReadErr  error
	WriteErr error
}

// NewConnectionMock creates a new mock connection with pre-configured response data
func NewConnectionMock(responseData ...string) *ConnectionMock {
	readBuf := bytes.NewBufferString(strings.Join(responseData, ""))
	return &ConnectionMock{
		readBuf:  readBuf,
		writeBuf: &bytes.Buffer{},
	}
}

// NewServerMock is NewConnectionMock preceded by the server greeting.
func NewServerMock(responseData ...string) *ConnectionMock {
	return NewConnectionMock(append([]string{DefaultBanner}, responseData...)...)
}

func (m *ConnectionMock) Read(b []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	return m.readBuf.Read(b)
}

func (m *ConnectionMock) Write(b []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (m *ConnectionMock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 6600}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error      { return nil }
func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// GetWrittenRequest returns the raw command bytes written to the mock connection
func (m *ConnectionMock) GetWrittenRequest() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeBuf.String()
}

// GetWrittenCommands returns the written command lines without terminators.
func (m *ConnectionMock) GetWrittenCommands() []string {
	written := strings.TrimSuffix(m.GetWrittenRequest(), "\n")
	if written == "" {
		return nil
	}
	return strings.Split(written, "\n")
}
