package kvline

import (
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pior/kvline/protocol"
)

// CircuitBreaker guards requests on a connection.
// *gobreaker.CircuitBreaker[*protocol.Response] satisfies it.
type CircuitBreaker interface {
	Execute(req func() (*protocol.Response, error)) (*protocol.Response, error)
	State() gobreaker.State
}

var _ CircuitBreaker = (*gobreaker.CircuitBreaker[*protocol.Response])(nil)

// NewCircuitBreakerConfig returns a function that creates a circuit breaker for a server.
// This is a helper for common use cases.
//
// Only transport failures count against the breaker: invalid arguments and
// protocol violations say nothing about the health of the server link.
// Connects count as requests, so it trips at half of all attempts failing: a
// server that accepts connections and breaks every request reaches exactly that.
// While open, Connect and requests fail immediately with a *ConnectionError;
// nothing is retried.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) CircuitBreaker {
	return func(serverAddr string) CircuitBreaker {
		settings := gobreaker.Settings{
			Name:        serverAddr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.5
			},
			IsSuccessful: func(err error) bool {
				return !protocol.IsConnectionFailure(err)
			},
		}
		return gobreaker.NewCircuitBreaker[*protocol.Response](settings)
	}
}
