// Package coarsetime provides a clock updated every 50ms by a background
// goroutine, for timestamps taken on every command where a full
// time.Now() is not needed.
package coarsetime

import (
	"sync/atomic"
	"time"
)

const tick = 50 * time.Millisecond

var now atomic.Value

func init() {
	now.Store(time.Now())

	ticker := time.NewTicker(tick)
	go func() {
		for range ticker.C {
			now.Store(time.Now())
		}
	}()
}

// Now returns the time of the last tick.
func Now() time.Time {
	return now.Load().(time.Time)
}
