// ABOUTME: This file classifies errors for retry decisions
// ABOUTME: Distinguishes between transient and permanent failures of external calls
package service

import (
	"context"
	"errors"
	"net"
	"syscall"

	"feed-curator/domain"
	"feed-curator/driver"
)

// IsRetryableError determines if an error should trigger a retry.
// Permanent failures (bad input, malformed scorer output, cancellation)
// fail immediately; transport hiccups and overload get another attempt.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation means the run is being torn down, not that the call failed.
	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// The scorer asked for backoff.
	if errors.Is(err, domain.ErrScorerOverloaded) {
		return true
	}

	// A garbled reply stays garbled; the attempt is charged instead.
	if errors.Is(err, domain.ErrMalformedScorerResponse) {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Err != nil {
			if errno, ok := opErr.Err.(syscall.Errno); ok {
				return errno == syscall.ECONNREFUSED ||
					errno == syscall.ECONNRESET ||
					errno == syscall.ETIMEDOUT
			}
		}

		if opErr.Temporary() || opErr.Timeout() {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout() || netErr.Temporary()
	}

	var statusErr *driver.StatusError
	if errors.As(err, &statusErr) {
		return isRetryableHTTPStatus(statusErr.Code)
	}

	return false
}

// isRetryableHTTPStatus determines if an HTTP status code is worth a retry.
func isRetryableHTTPStatus(status int) bool {
	switch {
	case status >= 500 && status <= 599:
		return true
	case status == 408: // Request Timeout
		return true
	case status == 429: // Too Many Requests
		return true
	default:
		// 4xx means the request itself is wrong; retrying repeats the mistake.
		return false
	}
}
