// Package retry runs an operation a bounded number of times with a fixed
// pause between attempts. It is meant for transient resource contention such as
// a file still held open by another process.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds a retry loop.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration
	// Sleep waits between attempts. Defaults to a context-aware time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// ExhaustedError is returned when every attempt failed.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do calls fn until it succeeds or the policy runs out. It returns the number of
// attempts made.
func (p Policy) Do(ctx context.Context, fn func(attempt int) error) (int, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		if last = fn(attempt); last == nil {
			return attempt, nil
		}
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, p.Interval); err != nil {
			return attempt, &ExhaustedError{Attempts: attempt, Last: last}
		}
	}

	return attempts, &ExhaustedError{Attempts: attempts, Last: last}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
