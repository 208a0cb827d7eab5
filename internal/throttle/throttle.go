// Package throttle provides a leading-edge throttle for expensive pure
// computations that are requested far more often than they need to run.
package throttle

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle runs a computation at most once per interval and serves the
// cached result in between.
//
// The first call always runs. A call that is refused marks the throttle as
// pending so that a caller polling on every frame knows a newer result is
// owed and keeps polling until it is produced.
//
// Time is supplied by the caller, so a Throttle can be driven by a virtual
// clock. It is not safe for concurrent use.
type Throttle[T any] struct {
	limiter *rate.Limiter

	last    T
	hasLast bool

	// pending is set when a call was refused since the last run.
	pending bool

	// forced makes the next call run regardless of the limiter.
	forced bool
}

// New returns a Throttle that allows one run per interval.
//
// A non-positive interval disables throttling.
func New[T any](interval time.Duration) *Throttle[T] {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle[T]{limiter: rate.NewLimiter(limit, 1)}
}

// Call runs fn if the interval since the last run has elapsed at now, or if
// a flush was forced, and returns its result. Otherwise it returns the
// result of the last run.
func (t *Throttle[T]) Call(now time.Time, fn func() T) T {
	allowed := t.limiter.AllowN(now, 1)

	if !allowed && !t.forced && t.hasLast {
		t.pending = true
		return t.last
	}

	t.last = fn()
	t.hasLast = true
	t.pending = false
	t.forced = false
	return t.last
}

// ForceFlush makes the next Call run immediately.
func (t *Throttle[T]) ForceFlush() {
	t.forced = true
}

// Pending reports whether a call was refused since the last run.
func (t *Throttle[T]) Pending() bool {
	return t.pending
}

// Last returns the result of the most recent run and whether there was one.
func (t *Throttle[T]) Last() (T, bool) {
	return t.last, t.hasLast
}
