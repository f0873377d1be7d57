package delivery

import (
	"context"
	"time"
)

// RetryPolicy is a bounded retry with a fixed inter-attempt delay.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Default retry policies, matching the independent persist and notify
// bounds of the pipeline.
var (
	DefaultPersistRetry = RetryPolicy{MaxAttempts: 3, Delay: 1 * time.Second}
	DefaultNotifyRetry  = RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second}
)

// Do runs op up to MaxAttempts times, sleeping Delay between attempts.
// It returns nil on the first success, the last error after exhaustion,
// or the context error if the context dies during an inter-attempt delay.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Delay):
			}
		}

		if lastErr = op(); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
