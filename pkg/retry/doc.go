// Package retry decorates asynchronous streams with bounded, backed-off retries.
//
// The central piece is NewPublisher: given a factory that produces a fresh
// stream per invocation and a Policy, it returns a types.Publisher with
// identical value semantics but self-healing on failure. Each downstream
// subscriber gets its own retry session that re-creates the producer on
// failure, waits out an exponential backoff delay between attempts, and
// carries the subscriber's outstanding demand across attempts.
//
// Key behaviors:
//
// 1. Bounded attempts:
//   - A policy with MaxRetries = m makes at most m+1 attempts.
//   - MaxRetries = 0 means "try once, never retry".
//   - The final error is forwarded verbatim, never wrapped, so the
//     consumer can distinguish root causes.
//
// 2. Exponential backoff:
//   - The delay before attempt i+1 is BaseDelay * 2^i.
//   - No jitter and no cap; callers bound total wall-clock time by
//     choosing MaxRetries.
//
// 3. Selective retry:
//   - A Predicate inspects each failure; a rejected error is forwarded
//     immediately with no further attempts.
//   - The default predicate retries every error.
//
// 4. Cancellation:
//   - Cancelling mid-attempt propagates to the active producer.
//   - Cancelling mid-delay stops the pending timer; the next attempt is
//     never started.
//   - Cancellation is idempotent and delivers no downstream signal.
//
// Basic usage:
//
//	pub := retry.NewPublisher(func() types.Publisher[Response] {
//		return client.Fetch(req)
//	}, retry.NewPolicy(3, 100*time.Millisecond))
//
//	pub.Subscribe(consumer)
//
// Selective retry:
//
//	policy := retry.NewPolicy(3, 100*time.Millisecond,
//		retry.WithPredicate(retry.UnlessPermanent))
//
// For single-value operations without a stream, Do applies the same policy
// to a plain function:
//
//	result, err := retry.Do(ctx, policy, func(ctx context.Context) (string, error) {
//		return fetchToken(ctx)
//	})
//
// Thread safety:
//
// Each retry session serializes its state behind a single mutex; upstream
// completion callbacks and downstream cancellation may race freely.
package retry
