package queue

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sidereusnuntius/hermes/internal/config"
)

// RetryPolicy schedules the attempts of a dispatch whose deliveries failed transiently. The delay starts
// at Initial and doubles with every attempt, without exceeding Max.
type RetryPolicy struct {
	MaxAttempts int
	Initial     time.Duration
	Max         time.Duration
}

func NewRetryPolicy(cfg *config.Configuration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Initial:     cfg.RetryInitial,
		Max:         cfg.RetryMax,
	}
}

// Delay returns how long to wait before the given attempt, counting the first execution as attempt 0.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(p.Initial),
		backoff.WithMaxInterval(p.Max),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxElapsedTime(0),
	)

	var d time.Duration
	for range attempt {
		d = b.NextBackOff()
	}
	return d
}

// Exhausted reports whether a job that has run attempt+1 times may not run again.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt+1 >= p.MaxAttempts
}
