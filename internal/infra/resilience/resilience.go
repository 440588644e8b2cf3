// Package resilience provides fault-tolerance patterns for outbound calls:
// circuit breaker and bulkhead. Calculations are never retried; a failed
// call is reported to the user as is.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"

	"github.com/sony/gobreaker"
)

// NewCircuitBreaker creates a circuit breaker with sensible defaults.
// Client errors (4xx) from the upstream are answers about the user's input,
// not signs of an unhealthy service, and do not count as failures.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // half-open: allow 3 requests
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var upstream *domain.ErrUpstream
			return errors.As(err, &upstream) && upstream.Status >= 400 && upstream.Status < 500
		},
	})
}

// Bulkhead limits concurrent access to a resource.
type Bulkhead struct {
	sem chan struct{}
}

// NewBulkhead creates a bulkhead with the given max concurrency.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Bulkhead{sem: make(chan struct{}, maxConcurrency)}
}

// Acquire blocks until a slot is available or context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot.
func (b *Bulkhead) Release() {
	<-b.sem
}
