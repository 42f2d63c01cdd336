package stream

import (
	"sync"

	"github.com/jzx17/restream/pkg/types"
)

// Collector is a subscriber that gathers every delivered value and records
// the terminal signal. By default it requests unbounded demand on subscribe;
// NewBoundedCollector requests nothing until the caller calls Request.
type Collector[T any] struct {
	mu        sync.Mutex
	sub       types.Subscription
	values    []T
	err       error
	completed bool
	initial   int64
	done      chan struct{}
}

// NewCollector creates a collector with unbounded demand.
func NewCollector[T any]() *Collector[T] {
	return &Collector[T]{
		initial: types.Unbounded,
		done:    make(chan struct{}),
	}
}

// NewBoundedCollector creates a collector that signals no demand on
// subscribe; the caller drives demand through Request.
func NewBoundedCollector[T any]() *Collector[T] {
	return &Collector[T]{
		done: make(chan struct{}),
	}
}

// OnSubscribe stores the subscription and issues the initial demand.
func (c *Collector[T]) OnSubscribe(sub types.Subscription) {
	c.mu.Lock()
	c.sub = sub
	initial := c.initial
	c.mu.Unlock()

	if initial > 0 {
		sub.Request(initial)
	}
}

// OnNext records a delivered value.
func (c *Collector[T]) OnNext(value T) {
	c.mu.Lock()
	c.values = append(c.values, value)
	c.mu.Unlock()
}

// OnComplete records terminal success.
func (c *Collector[T]) OnComplete() {
	c.mu.Lock()
	c.completed = true
	c.mu.Unlock()
	close(c.done)
}

// OnError records terminal failure.
func (c *Collector[T]) OnError(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	close(c.done)
}

// Request forwards a demand increment to the subscription.
func (c *Collector[T]) Request(n int64) {
	c.mu.Lock()
	sub := c.sub
	c.mu.Unlock()
	if sub != nil {
		sub.Request(n)
	}
}

// Cancel cancels the subscription. The done channel is not closed by
// cancellation; it only closes on a terminal signal.
func (c *Collector[T]) Cancel() {
	c.mu.Lock()
	sub := c.sub
	c.mu.Unlock()
	if sub != nil {
		sub.Cancel()
	}
}

// Done returns a channel closed when the collector receives a terminal signal.
func (c *Collector[T]) Done() <-chan struct{} {
	return c.done
}

// Values returns a copy of the values received so far.
func (c *Collector[T]) Values() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.values))
	copy(out, c.values)
	return out
}

// Err returns the terminal error, if any.
func (c *Collector[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Completed reports whether the stream terminated successfully.
func (c *Collector[T]) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}
