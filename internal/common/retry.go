package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrRateLimit marks a 429 from the backend.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is wrapped around the last failure once every attempt is used.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryOptions configures WithRetry. Zero fields take the defaults of three
// attempts starting at 100ms, doubling up to 30s.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Logger receives one warning per retried failure. Defaults to slog.Default.
	Logger *slog.Logger
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o RetryOptions) next(prev time.Duration) time.Duration {
	return min(time.Duration(float64(prev)*o.Multiplier), o.MaxDelay)
}

// RetryableError tags a failure with whether another attempt may succeed.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// permanent reports failures that another attempt cannot fix.
func permanent(err error) bool {
	if IsAuthError(err) || errors.Is(err, ErrValidation) {
		return true
	}
	var re *RetryableError
	return errors.As(err, &re) && !re.Retryable
}

// WithRetry runs op until it succeeds, fails permanently or runs out of
// attempts, sleeping with exponential backoff in between. Session and
// validation failures come back after the first attempt.
func WithRetry(ctx context.Context, op func() error, opts RetryOptions) error {
	opts = opts.withDefaults()

	wait := opts.InitialDelay
	for attempt := 1; ; attempt++ {
		err := op()
		switch {
		case err == nil:
			return nil
		case permanent(err):
			return err
		case attempt >= opts.MaxAttempts:
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		if errors.Is(err, ErrRateLimit) {
			wait = opts.MaxDelay
		}
		opts.Logger.Warn("retrying after failure",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"wait", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = opts.next(wait)
	}
}
