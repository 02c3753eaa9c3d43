package resilience

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestBreaker(maxFailures int, reset time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:          "test",
		MaxFailures:   maxFailures,
		Timeout:       time.Second,
		ResetInterval: reset,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	cb := newTestBreaker(2, time.Hour)
	ctx := context.Background()
	boom := errors.New("503 unavailable")
	calls := 0
	failing := func(context.Context) error {
		calls++
		return boom
	}

	for range 2 {
		if err := cb.Execute(ctx, failing); !errors.Is(err, boom) {
			t.Fatalf("Execute = %v, want %v", err, boom)
		}
	}
	if cb.State() != "open" {
		t.Fatalf("state = %s, want open", cb.State())
	}

	if err := cb.Execute(ctx, failing); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Execute on open circuit = %v", err)
	}
	if calls != 2 {
		t.Errorf("operation called %d times, want 2", calls)
	}
}

func TestCircuitBreakerRecovers(t *testing.T) {
	t.Parallel()

	cb := newTestBreaker(1, 20*time.Millisecond)
	ctx := context.Background()

	_ = cb.Execute(ctx, func(context.Context) error { return errors.New("down") })
	if cb.State() != "open" {
		t.Fatalf("state = %s, want open", cb.State())
	}

	time.Sleep(50 * time.Millisecond)
	if err := cb.Execute(ctx, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("call after reset: %v", err)
	}
	if cb.State() != "closed" {
		t.Errorf("state = %s, want closed", cb.State())
	}
}

func TestCircuitBreakerIgnoresCallerCancellation(t *testing.T) {
	t.Parallel()

	cb := newTestBreaker(1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cb.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute = %v", err)
	}
	if cb.State() != "closed" {
		t.Errorf("state = %s, want closed", cb.State())
	}
}

func TestCircuitBreakerTimeout(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "slow", Timeout: 10 * time.Millisecond})
	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Execute = %v, want ErrTimeout", err)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "off"})
	if cb.State() != "disabled" {
		t.Fatalf("state = %s, want disabled", cb.State())
	}

	boom := errors.New("down")
	calls := 0
	for range 10 {
		err := cb.Execute(context.Background(), func(ctx context.Context) error {
			calls++
			if _, ok := ctx.Deadline(); ok {
				t.Error("call got a deadline with no timeout configured")
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Execute = %v, want %v", err, boom)
		}
	}
	if calls != 10 {
		t.Errorf("operation called %d times, want 10", calls)
	}
}
