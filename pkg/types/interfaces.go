// Package types defines the stream protocol and shared primitives for restream
package types

// Publisher is a source of asynchronous values terminated by exactly one
// terminal signal (completion or error) per subscriber.
type Publisher[T any] interface {
	// Subscribe attaches a subscriber to this publisher. The publisher calls
	// OnSubscribe exactly once before any other signal.
	Subscribe(sub Subscriber[T])
}

// Subscriber receives values and a terminal signal from a Publisher.
//
// Signal grammar per subscription:
//
//	OnSubscribe (OnNext)* (OnComplete | OnError)?
//
// Signals are delivered serially; implementations are not required to be
// safe for concurrent signal delivery.
type Subscriber[T any] interface {
	// OnSubscribe hands the subscriber its subscription handle. No values
	// flow until the subscriber requests demand through it.
	OnSubscribe(sub Subscription)

	// OnNext delivers the next value.
	OnNext(value T)

	// OnComplete signals successful termination. No further signals follow.
	OnComplete()

	// OnError signals failed termination. No further signals follow.
	OnError(err error)
}

// Subscription is the demand and cancellation handle a subscriber holds.
type Subscription interface {
	// Request adds n to the subscriber's outstanding demand. Demand is
	// additive and saturates at Unbounded. Non-positive n is ignored.
	Request(n int64)

	// Cancel stops the subscription. Idempotent and terminal: after the
	// first call no further signals reach the subscriber. Cancellation is
	// not an error; no terminal signal is delivered for it.
	Cancel()
}

// PublisherFactory produces a fresh Publisher instance per invocation.
// Needed wherever a failed stream cannot be restarted, only recreated;
// must be safely re-invocable any number of times.
type PublisherFactory[T any] func() Publisher[T]
