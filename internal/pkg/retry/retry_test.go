package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type flaggedError struct {
	transient bool
}

func (e *flaggedError) Error() string   { return "flagged error" }
func (e *flaggedError) Transient() bool { return e.transient }

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type recordingObserver struct {
	attempts  []int
	delays    []time.Duration
	exhausted int
}

func (o *recordingObserver) RetryAttempt(op string, attempt int, delay time.Duration, err error) {
	o.attempts = append(o.attempts, attempt)
	o.delays = append(o.delays, delay)
}

func (o *recordingObserver) RetriesExhausted(op string, attempts int, err error) {
	o.exhausted = attempts
}

// capturedSleeps installs a fake sleep on p and returns the recorded delays.
func capturedSleeps(p *Policy) *[]time.Duration {
	var delays []time.Duration
	p.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return &delays
}

func TestDoSucceedsFirstTry(t *testing.T) {
	p := New(3, time.Second)
	delays := capturedSleeps(p)

	calls := 0
	err := p.Do(context.Background(), "fetch", func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if len(*delays) != 0 {
		t.Errorf("expected no sleeps, got %v", *delays)
	}
}

func TestDoExhaustsRetriesWithDoublingBackoff(t *testing.T) {
	obs := &recordingObserver{}
	p := New(3, 100*time.Millisecond)
	p.Observer = obs
	delays := capturedSleeps(p)

	failure := &flaggedError{transient: true}
	calls := 0
	err := p.Do(context.Background(), "fetch", func(ctx context.Context) error {
		calls++
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected the last error back, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected maxRetries+1 = 4 calls, got %d", calls)
	}

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	if len(*delays) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), *delays)
	}
	for i, d := range want {
		if (*delays)[i] != d {
			t.Errorf("sleep %d: expected %v, got %v", i, d, (*delays)[i])
		}
	}

	if len(obs.attempts) != 3 {
		t.Errorf("expected 3 retry notifications, got %d", len(obs.attempts))
	}
	if obs.exhausted != 4 {
		t.Errorf("expected exhaustion notification with 4 attempts, got %d", obs.exhausted)
	}
}

func TestDoFailsFastOnPermanentError(t *testing.T) {
	obs := &recordingObserver{}
	p := New(3, time.Second)
	p.Observer = obs
	delays := capturedSleeps(p)

	failure := &flaggedError{transient: false}
	calls := 0
	err := p.Do(context.Background(), "fetch", func(ctx context.Context) error {
		calls++
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected the permanent error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
	if len(*delays) != 0 {
		t.Errorf("expected no sleeps, got %v", *delays)
	}
	if len(obs.attempts) != 0 || obs.exhausted != 0 {
		t.Errorf("expected no observer notifications, got %+v", obs)
	}
}

func TestDoRecoversAfterTransientFailures(t *testing.T) {
	p := New(3, 50*time.Millisecond)
	delays := capturedSleeps(p)

	calls := 0
	err := p.Do(context.Background(), "fetch", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &flaggedError{transient: true}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after recovery, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if len(*delays) != 2 {
		t.Errorf("expected 2 sleeps, got %v", *delays)
	}
}

func TestDoStopsWhenContextCancelledDuringBackoff(t *testing.T) {
	p := New(5, time.Second)
	p.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	failure := &flaggedError{transient: true}
	calls := 0
	err := p.Do(context.Background(), "fetch", func(ctx context.Context) error {
		calls++
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected the last operation error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no further attempts after cancellation, got %d calls", calls)
	}
}

func TestDoReturnsContextErrorWhenCancelledUpFront(t *testing.T) {
	p := New(3, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := p.Do(ctx, "fetch", func(ctx context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no calls on a dead context, got %d", calls)
	}
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"flagged transient", &flaggedError{transient: true}, true},
		{"flagged permanent", &flaggedError{transient: false}, false},
		{"wrapped transient", fmt.Errorf("fetch: %w", &flaggedError{transient: true}), true},
		{"network timeout", timeoutError{}, true},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transient(tt.err); got != tt.want {
				t.Errorf("Transient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
