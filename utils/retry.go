package utils

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryFind re-runs fn with exponential backoff until it returns found=true,
// an error, or the attempt budget is exhausted. It replaces the fixed
// sleep-then-requery pattern for recovering from partial writes: the store
// may report a write as failed while the row was in fact persisted, so the
// caller re-queries by natural key until the row shows up.
func RetryFind[T any](maxAttempts uint64, initialInterval time.Duration, fn func() (T, bool, error)) (T, bool, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialInterval
	policy.MaxElapsedTime = 0 // bounded by attempt count, not wall clock
	wait := backoff.WithMaxRetries(policy, maxAttempts-1)

	for {
		result, found, err := fn()
		if err != nil || found {
			return result, found, err
		}
		next := wait.NextBackOff()
		if next == backoff.Stop {
			return result, false, nil
		}
		time.Sleep(next)
	}
}
