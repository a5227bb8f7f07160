package bufpool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	p := New(16, 64)

	buf := p.Get()
	assert.Equal(t, 0, buf.Len())
	assert.GreaterOrEqual(t, buf.Cap(), 16)

	buf.WriteString("status\n")
	p.Put(buf)

	buf = p.Get()
	assert.Equal(t, 0, buf.Len(), "recycled buffers are reset")
	p.Put(buf)
}

func TestPool_DropsLargeBuffers(t *testing.T) {
	p := New(16, 64)

	buf := p.Get()
	buf.WriteString(strings.Repeat("x", 1024))
	p.Put(buf)

	for range 10 {
		assert.LessOrEqual(t, p.Get().Cap(), 64)
	}
}
