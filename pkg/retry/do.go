// Package retry provides a single-value retry executor
package retry

import (
	"context"

	"github.com/jzx17/restream/pkg/types"
)

// Do executes fn under the policy: on failure it waits out the exponential
// backoff delay and calls fn again, up to MaxRetries retries. The final error
// is returned verbatim. Context cancellation is honored between attempts and
// mid-delay; the clock is taken from the context via types.ClockFromContext.
func Do[T any](ctx context.Context, policy *Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if policy == nil {
		policy = DefaultPolicy()
	}
	if policy.maxRetries < 0 {
		return zero, ErrNegativeRetries
	}

	clock := types.ClockFromContext(ctx)

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if !policy.ShouldRetry(err, attempt) {
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-clock.After(policy.NextDelay(attempt)):
		}
	}
}
