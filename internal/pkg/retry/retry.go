// Package retry wraps fallible remote calls with bounded exponential-backoff
// retries.
//
// Only transient failures are retried; permanent failures surface
// immediately. Backoff is deterministic: attempt n waits base<<n, so a base
// of 1s gives 1s, 2s, 4s, ... with no jitter.
package retry

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/ignite/admetrics/internal/pkg/logger"
)

// Observer is notified about every retry attempt and every exhaustion.
// Implementations must be safe for concurrent use.
type Observer interface {
	RetryAttempt(op string, attempt int, delay time.Duration, err error)
	RetriesExhausted(op string, attempts int, err error)
}

// Policy retries an operation up to MaxRetries times after the initial
// attempt, sleeping BackoffBase<<attempt between attempts.
type Policy struct {
	MaxRetries  int
	BackoffBase time.Duration
	Observer    Observer

	// sleep is swapped out in tests to capture delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a retry policy. Nonsensical values fall back to defaults:
// negative maxRetries becomes 0 (single attempt), non-positive backoffBase
// becomes 1s.
func New(maxRetries int, backoffBase time.Duration) *Policy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoffBase <= 0 {
		backoffBase = time.Second
	}
	return &Policy{MaxRetries: maxRetries, BackoffBase: backoffBase}
}

// Do runs op until it succeeds, fails permanently, exhausts the retry
// budget, or ctx ends. op is named for logging and observer callbacks.
func (p *Policy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !Transient(lastErr) {
			return lastErr
		}
		if attempt == p.MaxRetries {
			break
		}

		delay := p.BackoffBase << uint(attempt)
		logger.Warn("retrying after transient error",
			"op", op,
			"attempt", attempt+1,
			"max_retries", p.MaxRetries,
			"delay", delay.String(),
			"error", lastErr.Error())
		if p.Observer != nil {
			p.Observer.RetryAttempt(op, attempt+1, delay, lastErr)
		}
		if err := sleep(ctx, delay); err != nil {
			return lastErr
		}
	}

	logger.Error("retries exhausted",
		"op", op,
		"attempts", p.MaxRetries+1,
		"error", lastErr.Error())
	if p.Observer != nil {
		p.Observer.RetriesExhausted(op, p.MaxRetries+1, lastErr)
	}
	return lastErr
}

// Transient reports whether err is worth retrying. Errors can opt in by
// implementing Transient() bool anywhere in their chain; plain network
// timeouts are transient too.
func Transient(err error) bool {
	var t interface{ Transient() bool }
	if errors.As(err, &t) {
		return t.Transient()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
