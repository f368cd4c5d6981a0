// ABOUTME: Circuit breaker guarding the scorer endpoint against cascade failures
// ABOUTME: Opens after consecutive failures and half-opens after a cooldown
package retry

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Call while the breaker is open. Callers
// treat it as "endpoint down": stop the batch instead of burning
// attempts on every remaining item.
var ErrCircuitOpen = errors.New("circuit breaker open")

// BreakerState represents the current state of the circuit breaker
type BreakerState int

const (
	// StateClosed means the circuit is closed and calls are allowed
	StateClosed BreakerState = iota
	// StateOpen means the circuit is open and calls are blocked
	StateOpen
	// StateHalfOpen means the circuit is testing if the endpoint has recovered
	StateHalfOpen
)

// CircuitBreaker blocks calls to an endpoint after it has failed
// threshold times in a row, and lets a probe call through once the
// cooldown has passed.
type CircuitBreaker struct {
	lastFailure time.Time
	failures    int
	threshold   int
	cooldown    time.Duration
	state       BreakerState
	mu          sync.Mutex
}

// NewCircuitBreaker creates a breaker that opens after threshold
// consecutive failures and half-opens after cooldown.
func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
		state:     StateClosed,
	}
}

// Call executes fn under breaker protection. While the breaker is open
// fn is not invoked and ErrCircuitOpen is returned instead.
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()

	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.cooldown {
		cb.state = StateHalfOpen
	}

	if cb.state == StateOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}

	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()

		if cb.failures >= cb.threshold || cb.state == StateHalfOpen {
			cb.state = StateOpen
		}

		return err
	}

	cb.failures = 0
	cb.state = StateClosed

	return nil
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// Failures returns the current consecutive failure count
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.failures
}
