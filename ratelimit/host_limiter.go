// ABOUTME: Per-host request spacing for polite source and page fetching
// ABOUTME: Fixed minimum intervals with a small burst allowance; waits honor context
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// hostState tracks the pacing state for a single remote host.
type hostState struct {
	lastRequest time.Time
	tokens      int
	mu          sync.Mutex
}

// HostLimiter spaces outbound requests per remote host so that pulling
// many feeds from the same publisher does not hammer it. Hosts not
// listed in HostIntervals use the default interval.
type HostLimiter struct {
	logger        *slog.Logger
	hosts         map[string]*hostState
	hostIntervals map[string]time.Duration
	interval      time.Duration
	burst         int
	mu            sync.Mutex
}

// NewHostLimiter creates a per-host limiter.
func NewHostLimiter(interval time.Duration, burst int, hostIntervals map[string]time.Duration, logger *slog.Logger) (*HostLimiter, error) {
	if interval <= 0 {
		return nil, errors.New("default interval must be positive")
	}

	if burst <= 0 {
		return nil, errors.New("burst size must be positive")
	}

	if hostIntervals == nil {
		hostIntervals = make(map[string]time.Duration)
	}

	logger.Info("host rate limiter initialized",
		"default_interval", interval,
		"burst_size", burst,
		"host_overrides", len(hostIntervals))

	return &HostLimiter{
		interval:      interval,
		burst:         burst,
		hostIntervals: hostIntervals,
		hosts:         make(map[string]*hostState),
		logger:        logger,
	}, nil
}

// Wait blocks until a request to host may proceed or ctx is done. An
// idle host accumulates up to burst tokens, so short runs of requests
// pass through without waiting.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	state, interval := l.stateFor(host)

	state.mu.Lock()

	now := time.Now()
	elapsed := now.Sub(state.lastRequest)

	if elapsed >= interval {
		state.tokens += int(elapsed / interval)
		if state.tokens > l.burst {
			state.tokens = l.burst
		}
	}

	if state.tokens > 0 {
		state.tokens--
		state.lastRequest = now
		state.mu.Unlock()

		return nil
	}

	waitTime := interval - elapsed
	if waitTime <= 0 {
		state.lastRequest = now
		state.mu.Unlock()

		return nil
	}

	state.mu.Unlock()

	timer := time.NewTimer(waitTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		state.mu.Lock()
		state.lastRequest = time.Now()
		state.mu.Unlock()

		return nil
	case <-ctx.Done():
		return fmt.Errorf("rate limit wait cancelled: %w", ctx.Err())
	}
}

func (l *HostLimiter) stateFor(host string) (*hostState, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.hosts[host]
	if !ok {
		state = &hostState{}
		l.hosts[host] = state
	}

	interval := l.interval
	if override, ok := l.hostIntervals[host]; ok && override > 0 {
		interval = override
	}

	return state, interval
}

// HostOf extracts the hostname a URL points at, for limiter keying.
func HostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "unknown"
	}

	return parsed.Hostname()
}
