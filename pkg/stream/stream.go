// Package stream provides concrete publishers and subscribers for the
// restream protocol: demand-honoring sources that can back a
// types.PublisherFactory, and a collecting subscriber for consuming streams.
package stream

import (
	"sync"
	"sync/atomic"

	"github.com/jzx17/restream/pkg/types"
)

// FromSlice creates a publisher that emits the elements of items in order,
// honoring demand, then completes. Each Subscribe call replays the slice from
// the start, so a FromSlice publisher is freely re-subscribable.
func FromSlice[T any](items []T) types.Publisher[T] {
	return &slicePublisher[T]{items: items}
}

// Just creates a publisher that emits a single value then completes.
func Just[T any](value T) types.Publisher[T] {
	return &slicePublisher[T]{items: []T{value}}
}

// Empty creates a publisher that completes without emitting anything.
func Empty[T any]() types.Publisher[T] {
	return &slicePublisher[T]{}
}

// Fail creates a publisher that fails with err on the subscriber's first
// demand, emitting no values.
func Fail[T any](err error) types.Publisher[T] {
	return &failPublisher[T]{err: err}
}

// Once restricts pub to a single subscriber, modeling resources that cannot
// be restarted, only recreated. Subscribers after the first receive
// types.ErrAlreadySubscribed on their first demand.
func Once[T any](pub types.Publisher[T]) types.Publisher[T] {
	return &oncePublisher[T]{inner: pub}
}

type oncePublisher[T any] struct {
	used  atomic.Bool
	inner types.Publisher[T]
}

func (p *oncePublisher[T]) Subscribe(down types.Subscriber[T]) {
	if p.used.Swap(true) {
		Fail[T](types.ErrAlreadySubscribed).Subscribe(down)
		return
	}
	p.inner.Subscribe(down)
}

type slicePublisher[T any] struct {
	items []T
}

func (p *slicePublisher[T]) Subscribe(down types.Subscriber[T]) {
	down.OnSubscribe(&sliceSubscription[T]{items: p.items, down: down})
}

// sliceSubscription drives one subscriber over a slice. The emitting flag
// keeps the drain loop single-threaded when Request is called reentrantly
// from OnNext or concurrently from another goroutine.
type sliceSubscription[T any] struct {
	down  types.Subscriber[T]
	items []T

	mu       sync.Mutex
	demand   types.DemandTracker
	pos      int
	emitting bool
	done     bool
}

func (s *sliceSubscription[T]) Request(n int64) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.demand.Add(n)
	if s.emitting {
		s.mu.Unlock()
		return
	}
	s.emitting = true
	s.mu.Unlock()

	s.drain()
}

func (s *sliceSubscription[T]) Cancel() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
}

func (s *sliceSubscription[T]) drain() {
	for {
		s.mu.Lock()
		if s.done {
			s.mu.Unlock()
			return
		}
		if s.pos >= len(s.items) {
			s.done = true
			s.mu.Unlock()
			s.down.OnComplete()
			return
		}
		if s.demand.Outstanding() == 0 {
			s.emitting = false
			s.mu.Unlock()
			return
		}
		value := s.items[s.pos]
		s.pos++
		s.demand.Delivered(1)
		s.mu.Unlock()

		s.down.OnNext(value)
	}
}

type failPublisher[T any] struct {
	err error
}

func (p *failPublisher[T]) Subscribe(down types.Subscriber[T]) {
	down.OnSubscribe(&failSubscription[T]{err: p.err, down: down})
}

type failSubscription[T any] struct {
	down types.Subscriber[T]
	err  error

	mu   sync.Mutex
	done bool
}

func (s *failSubscription[T]) Request(n int64) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.mu.Unlock()

	s.down.OnError(s.err)
}

func (s *failSubscription[T]) Cancel() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
}
