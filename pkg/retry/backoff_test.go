package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	backoff := ExponentialBackoff{Base: base}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{10, 102400 * time.Millisecond},
	}

	for _, tt := range tests {
		got := backoff.Delay(tt.attempt)
		if got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponentialBackoff_NegativeAttempt(t *testing.T) {
	backoff := ExponentialBackoff{Base: time.Second}
	if got := backoff.Delay(-3); got != time.Second {
		t.Errorf("Delay(-3) = %v, want %v", got, time.Second)
	}
}

func TestExponentialBackoff_NoCap(t *testing.T) {
	// growth is unbounded; bounding total wall-clock time is the caller's
	// job via the retry budget
	backoff := ExponentialBackoff{Base: time.Millisecond}
	if got, want := backoff.Delay(20), (1<<20)*time.Millisecond; got != want {
		t.Errorf("Delay(20) = %v, want %v", got, want)
	}
}
