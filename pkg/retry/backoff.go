// Package retry provides backoff computation
package retry

import (
	"math"
	"time"
)

// ExponentialBackoff computes the delay between attempts: Delay(n) = Base * 2^n.
// Attempt index 0 is the first retry, so the delay before the second overall
// attempt is Base, before the third 2*Base, and so on. There is no jitter and
// no cap; callers bound total wall-clock time through the retry budget.
type ExponentialBackoff struct {
	Base time.Duration
}

// Delay returns the delay to wait after attempt (0-based) fails.
func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return time.Duration(float64(b.Base) * math.Pow(2, float64(attempt)))
}
