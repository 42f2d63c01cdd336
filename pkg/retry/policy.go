// Package retry provides retry policy and predicate definitions
package retry

import (
	"errors"
	"time"

	"github.com/jzx17/restream/pkg/types"
)

// ErrNegativeRetries indicates a policy configured with MaxRetries < 0;
// such a session fails fast without making any attempt.
var ErrNegativeRetries = errors.New("max retries must be non-negative")

// Default policy configuration
const (
	DefaultMaxRetries = 5
	DefaultBaseDelay  = time.Second
)

// Predicate decides whether a failed attempt should be retried.
type Predicate func(error) bool

// Policy configures a retry session. Immutable once created; a single Policy
// may be shared across any number of sessions.
type Policy struct {
	maxRetries int
	baseDelay  time.Duration
	predicate  Predicate
	backoff    ExponentialBackoff
}

// PolicyOption is a configuration option for retry policies
type PolicyOption func(*Policy)

// WithPredicate sets the retry predicate.
func WithPredicate(pred Predicate) PolicyOption {
	return func(p *Policy) {
		if pred != nil {
			p.predicate = pred
		}
	}
}

// NewPolicy creates a policy allowing maxRetries retries after the initial
// attempt, with exponential backoff starting at baseDelay. The predicate
// defaults to Always.
func NewPolicy(maxRetries int, baseDelay time.Duration, opts ...PolicyOption) *Policy {
	p := &Policy{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		predicate:  Always,
		backoff:    ExponentialBackoff{Base: baseDelay},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// DefaultPolicy returns the convenience default: 5 retries, 1 second base
// delay, retry every error.
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultMaxRetries, DefaultBaseDelay)
}

// MaxRetries returns the retry budget after the initial attempt.
func (p *Policy) MaxRetries() int {
	return p.maxRetries
}

// BaseDelay returns the delay before the first retry.
func (p *Policy) BaseDelay() time.Duration {
	return p.baseDelay
}

// ShouldRetry reports whether the failure of attempt (0-based) warrants
// another attempt. Budget exhaustion is checked before the predicate.
func (p *Policy) ShouldRetry(err error, attempt int) bool {
	if attempt >= p.maxRetries {
		return false
	}
	return p.predicate(err)
}

// NextDelay returns the backoff delay after attempt (0-based) fails.
func (p *Policy) NextDelay(attempt int) time.Duration {
	return p.backoff.Delay(attempt)
}

// Always is the default predicate: every error is retried.
func Always(error) bool {
	return true
}

// UnlessPermanent retries every error except those marked permanent via
// types.MarkPermanent.
func UnlessPermanent(err error) bool {
	return !types.IsPermanent(err)
}

// MarkedRetryable retries only errors explicitly marked retryable via
// types.MarkRetryable.
func MarkedRetryable(err error) bool {
	return types.IsRetryable(err)
}
