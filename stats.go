package mpd

import (
	"sync/atomic"
)

// ConnStats contains statistics about a connection.
// All fields are safe for concurrent access.
//
// For Prometheus integration, expose these as counters.
type ConnStats struct {
	Commands       uint64 // Round trips started, batches included
	Acks           uint64 // Commands rejected by the server
	ProtocolErrors uint64 // Malformed or unexpected responses
	ConnErrors     uint64 // Read and write failures
	IdleWaits      uint64 // Idle waits started
	IdleCancels    uint64 // Idle waits ended by noidle
}

// connStatsCollector provides internal methods for updating connection stats.
// Not exported - connections update their own stats.
type connStatsCollector struct {
	stats *ConnStats
}

func newConnStatsCollector() *connStatsCollector {
	return &connStatsCollector{
		stats: &ConnStats{},
	}
}

func (c *connStatsCollector) recordCommand() {
	atomic.AddUint64(&c.stats.Commands, 1)
}

func (c *connStatsCollector) recordAck() {
	atomic.AddUint64(&c.stats.Acks, 1)
}

func (c *connStatsCollector) recordProtocolError() {
	atomic.AddUint64(&c.stats.ProtocolErrors, 1)
}

func (c *connStatsCollector) recordConnError() {
	atomic.AddUint64(&c.stats.ConnErrors, 1)
}

func (c *connStatsCollector) recordIdle() {
	atomic.AddUint64(&c.stats.IdleWaits, 1)
}

func (c *connStatsCollector) recordIdleCancel() {
	atomic.AddUint64(&c.stats.IdleCancels, 1)
}

func (c *connStatsCollector) snapshot() ConnStats {
	return ConnStats{
		Commands:       atomic.LoadUint64(&c.stats.Commands),
		Acks:           atomic.LoadUint64(&c.stats.Acks),
		ProtocolErrors: atomic.LoadUint64(&c.stats.ProtocolErrors),
		ConnErrors:     atomic.LoadUint64(&c.stats.ConnErrors),
		IdleWaits:      atomic.LoadUint64(&c.stats.IdleWaits),
		IdleCancels:    atomic.LoadUint64(&c.stats.IdleCancels),
	}
}
