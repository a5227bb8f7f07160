package mpd

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pior/mpd/proto"
)

// NewCircuitBreakerConfig returns a function that creates circuit breakers for servers.
// This is a helper for common use cases.
//
// Only connectivity and protocol failures count against the server. A
// command rejected with an ACK, a value that fails to decode or a cancelled
// context is a successful exchange as far as the breaker is concerned.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *gobreaker.CircuitBreaker[struct{}] {
	return func(serverAddr string) *gobreaker.CircuitBreaker[struct{}] {
		settings := gobreaker.Settings{
			Name:        serverAddr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			IsSuccessful: func(err error) bool {
				return !isServerFailure(err)
			},
		}
		return gobreaker.NewCircuitBreaker[struct{}](settings)
	}
}

func isServerFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, proto.ErrInvalidArgument) {
		return false
	}
	var cerr *proto.ConnectionError
	var perr *proto.ProtocolError
	return errors.As(err, &cerr) || errors.As(err, &perr) || errors.Is(err, ErrConnClosed)
}
