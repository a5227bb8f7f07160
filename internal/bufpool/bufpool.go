// Package bufpool recycles the byte buffers used to build command lines.
package bufpool

import (
	"bytes"
	"sync"
)

// Pool is a sync.Pool of *bytes.Buffer. Buffers that grew beyond maxSize
// are dropped instead of being recycled.
type Pool struct {
	pool    sync.Pool
	maxSize int
}

// New returns a pool whose fresh buffers have initialSize capacity.
func New(initialSize, maxSize int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, initialSize))
			},
		},
		maxSize: maxSize,
	}
}

// Get returns an empty buffer.
func (p *Pool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put resets buf and returns it to the pool.
func (p *Pool) Put(buf *bytes.Buffer) {
	if buf.Cap() > p.maxSize {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}
