// Package retry provides the retrying stream decorator
package retry

import (
	"sync"

	"github.com/jzx17/restream/pkg/types"
)

// publisher decorates a publisher factory with retry semantics.
type publisher[T any] struct {
	factory types.PublisherFactory[T]
	policy  *Policy
	clock   types.Clock
	handler EventHandler
}

// Option is a configuration option for a retry publisher
type Option[T any] func(*publisher[T])

// WithClock sets the clock used for backoff timers.
func WithClock[T any](clock types.Clock) Option[T] {
	return func(p *publisher[T]) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithEventHandler sets an observer for retry events.
func WithEventHandler[T any](handler EventHandler) Option[T] {
	return func(p *publisher[T]) {
		p.handler = handler
	}
}

// NewPublisher wraps factory so that each subscriber receives a self-healing
// stream: on failure the producer is re-created via the factory and the
// subscriber's outstanding demand is carried over to the new attempt. A nil
// policy means DefaultPolicy. The factory must yield a fresh producer per
// invocation; it is invoked at most MaxRetries+1 times per subscriber.
func NewPublisher[T any](factory types.PublisherFactory[T], policy *Policy, opts ...Option[T]) types.Publisher[T] {
	if factory == nil {
		panic("publisher factory cannot be nil")
	}
	if policy == nil {
		policy = DefaultPolicy()
	}

	p := &publisher[T]{
		factory: factory,
		policy:  policy,
		clock:   types.NewRealClock(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Subscribe starts a new retry session for down. The first attempt is made
// lazily, on the subscriber's first positive demand.
func (p *publisher[T]) Subscribe(down types.Subscriber[T]) {
	s := &session[T]{
		factory: p.factory,
		policy:  p.policy,
		clock:   p.clock,
		handler: p.handler,
		down:    down,
	}
	down.OnSubscribe(s)
}

// session is a single retry lifecycle: one downstream subscriber, up to
// MaxRetries+1 upstream attempts.
//
// State invariants, all guarded by mu:
//   - at most one of upstream/timer is non-nil: the session is either
//     streaming an attempt or waiting to retry, never both;
//   - terminal/cancelled are one-way latches; once either is set, no signal
//     reaches down and no attempt or timer is created;
//   - epoch increments whenever the active attempt or pending timer is
//     invalidated, so stale upstream signals and stale timer fires no-op.
type session[T any] struct {
	factory types.PublisherFactory[T]
	policy  *Policy
	clock   types.Clock
	handler EventHandler
	down    types.Subscriber[T]

	mu        sync.Mutex
	demand    types.DemandTracker
	attempt   int
	epoch     int
	upstream  types.Subscription
	timer     types.Timer
	started   bool
	terminal  bool
	cancelled bool
}

// Request adds downstream demand. The first positive request starts attempt 0;
// later requests are forwarded to the active attempt, or simply accumulated
// while a backoff delay is pending.
func (s *session[T]) Request(n int64) {
	if n <= 0 {
		return
	}

	s.mu.Lock()
	if s.terminal || s.cancelled {
		s.mu.Unlock()
		return
	}
	s.demand.Add(n)

	if !s.started {
		s.started = true
		if s.policy.maxRetries < 0 {
			s.terminal = true
			s.mu.Unlock()
			s.down.OnError(ErrNegativeRetries)
			return
		}
		epoch, attempt := s.epoch, s.attempt
		s.mu.Unlock()
		s.subscribeAttempt(epoch, attempt)
		return
	}

	up := s.upstream
	s.mu.Unlock()
	if up != nil {
		up.Request(n)
	}
}

// Cancel tears the session down: the active attempt is cancelled or the
// pending backoff timer is stopped, and no further signal reaches the
// subscriber. Idempotent.
func (s *session[T]) Cancel() {
	s.mu.Lock()
	if s.terminal || s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	s.epoch++
	up := s.upstream
	s.upstream = nil
	timer := s.timer
	s.timer = nil
	s.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	if up != nil {
		up.Cancel()
	}
}

func (s *session[T]) subscribeAttempt(epoch, attempt int) {
	if s.handler != nil {
		s.handler.OnAttempt(attempt)
	}
	producer := s.factory()
	producer.Subscribe(&attemptSubscriber[T]{session: s, epoch: epoch})
}

func (s *session[T]) retryTimerFired(epoch int) {
	s.mu.Lock()
	if s.terminal || s.cancelled || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.attempt++
	attempt := s.attempt
	s.mu.Unlock()

	s.subscribeAttempt(epoch, attempt)
}

// attemptSubscriber relays one attempt's signals into its session. The epoch
// captured at creation lets the session discard signals from attempts that
// have already terminated or been superseded.
type attemptSubscriber[T any] struct {
	session *session[T]
	epoch   int
}

func (a *attemptSubscriber[T]) OnSubscribe(up types.Subscription) {
	s := a.session

	s.mu.Lock()
	if s.terminal || s.cancelled || a.epoch != s.epoch {
		s.mu.Unlock()
		up.Cancel()
		return
	}
	s.upstream = up
	n := s.demand.Outstanding()
	s.mu.Unlock()

	if n > 0 {
		up.Request(n)
	}
}

func (a *attemptSubscriber[T]) OnNext(value T) {
	s := a.session

	s.mu.Lock()
	if s.terminal || s.cancelled || a.epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.demand.Delivered(1)
	s.mu.Unlock()

	s.down.OnNext(value)
}

func (a *attemptSubscriber[T]) OnComplete() {
	s := a.session

	s.mu.Lock()
	if s.terminal || s.cancelled || a.epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.terminal = true
	s.epoch++
	s.upstream = nil
	s.mu.Unlock()

	s.down.OnComplete()
}

func (a *attemptSubscriber[T]) OnError(err error) {
	s := a.session

	s.mu.Lock()
	if s.terminal || s.cancelled || a.epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.epoch++
	s.upstream = nil
	attempt := s.attempt

	if !s.policy.ShouldRetry(err, attempt) {
		s.terminal = true
		s.mu.Unlock()
		if s.handler != nil {
			s.handler.OnGiveUp(attempt, err)
		}
		s.down.OnError(err)
		return
	}

	delay := s.policy.NextDelay(attempt)
	epoch := s.epoch
	s.timer = s.clock.AfterFunc(delay, func() { s.retryTimerFired(epoch) })
	s.mu.Unlock()

	if s.handler != nil {
		s.handler.OnRetryScheduled(attempt, err, delay)
	}
}
