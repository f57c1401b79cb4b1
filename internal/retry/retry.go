// Package retry wraps a single fallible outbound call in exponential
// backoff with jitter. The retryable predicate is pluggable so geocoding
// and routing can share the same core with different rules.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"time"
)

const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 1 * time.Second
	DefaultMaxDelay     = 60 * time.Second
)

// StatusError carries an HTTP-style status from a failed service call so
// the predicate can distinguish transient from terminal failures.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Policy parameterizes one retry loop. A nil Retryable treats every
// failure as terminal.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Retryable    func(error) bool
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Retryable:    Transient,
	}
}

// Transient reports whether an error is worth retrying: network timeouts
// and rate-limit or server-unavailability statuses.
func Transient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// sleep is swapped out in tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs op up to p.MaxAttempts times. Between attempts it sleeps for
// the current delay plus a random jitter in [10%, 30%] of it, then
// doubles the delay up to p.MaxDelay. Terminal failures and exhausted
// attempts propagate to the caller.
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := p.InitialDelay
	if delay <= 0 {
		delay = DefaultInitialDelay
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if p.Retryable == nil || !p.Retryable(err) || attempt == attempts {
			return zero, lastErr
		}

		jitter := time.Duration((0.1 + 0.2*rand.Float64()) * float64(delay))
		wait := delay + jitter
		if wait > maxDelay {
			wait = maxDelay
		}
		if err := sleep(ctx, wait); err != nil {
			return zero, err
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}

	return zero, lastErr
}
