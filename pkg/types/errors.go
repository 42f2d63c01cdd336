// Package types defines error types
package types

import "errors"

// Predefined errors
var (
	// ErrAlreadySubscribed indicates a single-use publisher was subscribed twice
	ErrAlreadySubscribed = errors.New("publisher already subscribed")
)

// RetryableError marks an error as explicitly retryable or permanent so retry
// predicates can classify failures without knowing their concrete types.
type RetryableError struct {
	// Err is the underlying error
	Err error

	// Retryable indicates whether the error is retryable
	Retryable bool
}

// Error implements the error interface
func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// MarkRetryable wraps err as retryable.
func MarkRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: true}
}

// MarkPermanent wraps err as not retryable.
func MarkPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: false}
}

// IsRetryable reports whether err carries an explicit retryable marker set to
// true. Unmarked errors report false.
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}
	return false
}

// IsPermanent reports whether err carries an explicit retryable marker set to
// false.
func IsPermanent(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return !retryableErr.Retryable
	}
	return false
}
