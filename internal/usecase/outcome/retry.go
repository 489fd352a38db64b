package outcome

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
	}
}

// Retry runs op up to MaxAttempts times with exponential backoff,
// retrying only errors Classify reports as retryable. Everything else
// aborts immediately and is returned as-is.
func Retry[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = policy.BaseDelay
	b := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(policy.MaxAttempts-1)), ctx)

	var result T
	err := backoff.Retry(func() error {
		r, opErr := op()
		if opErr != nil {
			if !Classify(opErr).Retryable {
				return backoff.Permanent(opErr)
			}
			return opErr
		}
		result = r
		return nil
	}, b)

	return result, err
}
