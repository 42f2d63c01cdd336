// Package retry provides retry event observation
package retry

import "time"

// EventHandler observes retry session milestones. Handlers must be safe for
// concurrent use; a single handler may serve many sessions. Events carry no
// influence over retry semantics.
type EventHandler interface {
	// OnAttempt is called before attempt (0-based) subscribes to a fresh producer
	OnAttempt(attempt int)

	// OnRetryScheduled is called when attempt failed with err and the next
	// attempt has been scheduled to start after delay
	OnRetryScheduled(attempt int, err error, delay time.Duration)

	// OnGiveUp is called when attempt failed with err and err is about to be
	// forwarded downstream as the terminal failure
	OnGiveUp(attempt int, err error)
}

// Logger interface for logging
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LogEventHandler is an EventHandler that reports retry events to a Logger.
type LogEventHandler struct {
	logger Logger
}

// NewLogEventHandler creates a logging event handler
func NewLogEventHandler(logger Logger) *LogEventHandler {
	return &LogEventHandler{logger: logger}
}

// OnAttempt handles attempt start events
func (h *LogEventHandler) OnAttempt(attempt int) {
	if h.logger != nil && attempt > 0 {
		h.logger.Debugf("retry attempt %d starting", attempt)
	}
}

// OnRetryScheduled handles retry scheduling events
func (h *LogEventHandler) OnRetryScheduled(attempt int, err error, delay time.Duration) {
	if h.logger != nil {
		h.logger.Warnf("attempt %d failed: %v, retrying in %v", attempt, err, delay)
	}
}

// OnGiveUp handles terminal failure events
func (h *LogEventHandler) OnGiveUp(attempt int, err error) {
	if h.logger != nil {
		h.logger.Errorf("giving up after %d attempts: %v", attempt+1, err)
	}
}
