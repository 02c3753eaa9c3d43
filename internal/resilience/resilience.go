// Package resilience wraps calls to flaky remote services in a circuit
// breaker with a per-call timeout.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrCircuitOpen indicates the circuit breaker is open.
	ErrCircuitOpen = gobreaker.ErrOpenState
	// ErrTooManyRequests indicates the half-open call limit was reached.
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// CircuitBreaker implements the circuit breaker pattern using gobreaker.
type CircuitBreaker struct {
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

// CircuitBreakerConfig holds configuration for circuit breakers.
type CircuitBreakerConfig struct {
	Name string
	// MaxFailures consecutive failures open the circuit. Zero disables the
	// breaker and every call goes through.
	MaxFailures int
	// Timeout bounds a single call that has no deadline of its own. Zero
	// leaves calls unbounded.
	Timeout time.Duration
	// HalfOpenLimit calls are let through while half-open.
	HalfOpenLimit int
	// ResetInterval is how long the circuit stays open.
	ResetInterval time.Duration
	Logger        *slog.Logger
}

// NewCircuitBreaker creates a new circuit breaker. HalfOpenLimit and
// ResetInterval default when zero.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	breaker := &CircuitBreaker{timeout: cfg.Timeout}
	if cfg.MaxFailures <= 0 {
		return breaker
	}
	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}
	if cfg.ResetInterval <= 0 {
		cfg.ResetInterval = 60 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(cfg.HalfOpenLimit),
		Timeout:     cfg.ResetInterval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.MaxFailures)
		},
		// A caller giving up is not a failure of the remote side.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	breaker.cb = gobreaker.NewCircuitBreaker(settings)
	return breaker
}

// Execute runs operation through the circuit breaker. When the circuit is
// open the operation is not called and ErrCircuitOpen is returned.
func (cb *CircuitBreaker) Execute(ctx context.Context, operation func(context.Context) error) error {
	if _, ok := ctx.Deadline(); !ok && cb.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cb.timeout)
		defer cancel()
	}

	run := func() (interface{}, error) {
		err := operation(ctx)
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, err
	}
	if cb.cb == nil {
		_, err := run()
		return err
	}
	_, err := cb.cb.Execute(run)
	return err
}

// State reports the breaker state as "closed", "half-open" or "open", or
// "disabled" when the breaker was configured off.
func (cb *CircuitBreaker) State() string {
	if cb.cb == nil {
		return "disabled"
	}
	return cb.cb.State().String()
}
