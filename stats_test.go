package mpd

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnStats_Collector(t *testing.T) {
	c := newConnStatsCollector()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.recordCommand()
			c.recordAck()
			c.recordIdle()
		}()
	}
	wg.Wait()
	c.recordProtocolError()
	c.recordConnError()
	c.recordIdleCancel()

	assert.Equal(t, ConnStats{
		Commands:       10,
		Acks:           10,
		ProtocolErrors: 1,
		ConnErrors:     1,
		IdleWaits:      10,
		IdleCancels:    1,
	}, c.snapshot())
}

func TestConnStats_Conn(t *testing.T) {
	conn, _ := newTestConn(t,
		"OK\n",
		"ACK [2@0] {setvol} Number expected\n",
		"changed: mixer\nOK\n",
	)
	ctx := context.Background()

	assert.Equal(t, ConnStats{}, conn.Stats())

	require.NoError(t, conn.Ping(ctx))
	require.Error(t, conn.Exec(ctx, "setvol", "loud"))
	_, err := conn.Idle(ctx, SubsystemMixer)
	require.NoError(t, err)

	assert.Equal(t, ConnStats{Commands: 2, Acks: 1, IdleWaits: 1}, conn.Stats())
}
