// ABOUTME: Exponential backoff retry with jitter for external call sites
// ABOUTME: Policy is config-driven; a Classifier decides transient vs permanent
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Policy controls how many attempts an operation gets and how long the
// waits between them grow.
type Policy struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

// DefaultPolicy is used when configuration omits the retry block.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:   3,
		BaseDelay:     time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.1,
	}
}

// Classifier reports whether an error is worth another attempt.
// Returning false fails the operation immediately.
type Classifier func(error) bool

// Retrier runs operations under a Policy. It lives at the call site of
// external calls (scorer, publication remote) so test doubles can
// simulate transient and permanent failures deterministically.
type Retrier struct {
	logger      *slog.Logger
	isTransient Classifier
	policy      Policy
}

func NewRetrier(policy Policy, classifier Classifier, logger *slog.Logger) *Retrier {
	if policy.MaxAttempts <= 0 {
		policy = DefaultPolicy()
	}

	return &Retrier{policy: policy, isTransient: classifier, logger: logger}
}

// Do runs op until it succeeds, the policy is exhausted, the error is
// classified permanent, or ctx is done during a backoff wait. Waits are
// context-cancellable; the returned error wraps the last attempt's.
func (r *Retrier) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	attempts := 0

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		attempts = attempt

		lastErr = op(ctx)
		if lastErr == nil {
			if attempt > 1 && r.logger != nil {
				r.logger.InfoContext(ctx, "operation recovered", "attempt", attempt)
			}

			return nil
		}

		transient := r.isTransient != nil && r.isTransient(lastErr)
		if !transient || attempt == r.policy.MaxAttempts {
			break
		}

		delay := r.policy.delay(attempt)
		if r.logger != nil {
			r.logger.WarnContext(ctx, "transient failure, backing off",
				"attempt", attempt,
				"delay_ms", delay.Milliseconds(),
				"error", lastErr)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("after %d attempt(s): %w", attempts, lastErr)
}

// delay is exponential in the attempt number, capped at MaxDelay, with
// +/- JitterFactor/2 of randomization to spread thundering herds.
func (p Policy) delay(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.BackoffFactor, float64(attempt-1))
	if d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}

	d *= 1.0 + (rand.Float64()-0.5)*p.JitterFactor

	return time.Duration(d)
}
