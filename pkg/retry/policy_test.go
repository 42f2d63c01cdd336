package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/jzx17/restream/pkg/types"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	if policy.MaxRetries() != 5 {
		t.Errorf("MaxRetries() = %d, want 5", policy.MaxRetries())
	}
	if policy.BaseDelay() != time.Second {
		t.Errorf("BaseDelay() = %v, want 1s", policy.BaseDelay())
	}
	if !policy.ShouldRetry(errors.New("any"), 0) {
		t.Error("default predicate must retry every error")
	}
}

func TestPolicy_ShouldRetry(t *testing.T) {
	err := errors.New("failure")

	tests := []struct {
		name       string
		maxRetries int
		attempt    int
		want       bool
	}{
		{"within budget", 3, 0, true},
		{"last allowed retry", 3, 2, true},
		{"budget exhausted", 3, 3, false},
		{"past budget", 3, 5, false},
		{"zero budget", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewPolicy(tt.maxRetries, time.Second)
			if got := policy.ShouldRetry(err, tt.attempt); got != tt.want {
				t.Errorf("ShouldRetry(err, %d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestPolicy_WithPredicate(t *testing.T) {
	rejected := errors.New("rejected")
	policy := NewPolicy(10, time.Second, WithPredicate(func(err error) bool {
		return !errors.Is(err, rejected)
	}))

	if policy.ShouldRetry(rejected, 0) {
		t.Error("predicate rejection must stop retries regardless of budget")
	}
	if !policy.ShouldRetry(errors.New("other"), 0) {
		t.Error("accepted errors within budget must retry")
	}
}

func TestPolicy_NilPredicateIgnored(t *testing.T) {
	policy := NewPolicy(3, time.Second, WithPredicate(nil))
	if !policy.ShouldRetry(errors.New("any"), 0) {
		t.Error("nil predicate option must keep the default")
	}
}

func TestPolicy_NextDelay(t *testing.T) {
	policy := NewPolicy(5, 50*time.Millisecond)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 50 * time.Millisecond},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := policy.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestPredicates(t *testing.T) {
	plain := errors.New("plain")
	retryable := types.MarkRetryable(errors.New("transient"))
	permanent := types.MarkPermanent(errors.New("fatal"))

	tests := []struct {
		name string
		pred Predicate
		err  error
		want bool
	}{
		{"Always plain", Always, plain, true},
		{"Always permanent", Always, permanent, true},
		{"UnlessPermanent plain", UnlessPermanent, plain, true},
		{"UnlessPermanent retryable", UnlessPermanent, retryable, true},
		{"UnlessPermanent permanent", UnlessPermanent, permanent, false},
		{"MarkedRetryable plain", MarkedRetryable, plain, false},
		{"MarkedRetryable retryable", MarkedRetryable, retryable, true},
		{"MarkedRetryable permanent", MarkedRetryable, permanent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
