package types

import "math"

// Unbounded is the demand value meaning "no backpressure": the subscriber
// accepts every value the producer can deliver.
const Unbounded int64 = math.MaxInt64

// DemandTracker accounts for how many values a subscriber has requested but
// not yet received. It survives producer restarts: a retried attempt is handed
// the current outstanding value, never a reset, so a mid-stream failure does
// not lose or duplicate requested quantity.
//
// DemandTracker is not synchronized. The owner must serialize access, e.g. by
// mutating it only under the lock that guards the rest of its session state.
type DemandTracker struct {
	outstanding int64
}

// Add records n newly requested values. Non-positive n is ignored.
// Demand saturates at Unbounded and stays there.
func (d *DemandTracker) Add(n int64) {
	if n <= 0 || d.outstanding == Unbounded {
		return
	}
	if n >= Unbounded-d.outstanding {
		d.outstanding = Unbounded
		return
	}
	d.outstanding += n
}

// Delivered records n values handed to the subscriber. Unbounded demand is
// never decremented.
func (d *DemandTracker) Delivered(n int64) {
	if n <= 0 || d.outstanding == Unbounded {
		return
	}
	if n >= d.outstanding {
		d.outstanding = 0
		return
	}
	d.outstanding -= n
}

// Outstanding returns the number of values still owed to the subscriber,
// or Unbounded.
func (d *DemandTracker) Outstanding() int64 {
	return d.outstanding
}
