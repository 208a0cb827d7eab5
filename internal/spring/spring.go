// Package spring implements the scalar interpolator that drives every
// animated quantity of a chart.
//
// A Value chases its target exponentially: each step moves the current
// value by k·(target − current) where k = Rate × deltaMs. Once the
// remaining distance drops under the convergence epsilon the value snaps
// to the target exactly, so a converged value compares equal to its target.
package spring

import "math"

// minRelativeEpsilon keeps a relative threshold meaningful when the
// target is zero.
const minRelativeEpsilon = 1e-12

// Params tunes a Value.
type Params struct {
	// Rate is the convergence speed per millisecond.
	Rate float64

	// Epsilon is the convergence threshold.
	Epsilon float64

	// Relative makes Epsilon a fraction of |target| instead of an
	// absolute distance. Used for quantities whose magnitude depends on
	// the data, such as the pixels-per-unit zoom ratio.
	Relative bool

	// MaxDeltaMs caps a single frame's delta so that a long pause
	// (backgrounded tab, hitch) does not turn into a jump.
	MaxDeltaMs float64
}

// Value is a spring-damped scalar.
//
// The zero Value is usable: with no Rate it jumps straight to whatever
// target it is stepped toward.
type Value struct {
	params      Params
	current     float64
	target      float64
	initialized bool
}

func New(params Params) *Value {
	return &Value{params: params}
}

// Step advances the value toward target by one frame and returns the
// new current value.
//
// On the first call the value jumps to target: a chart's first paint is
// not animated.
func (v *Value) Step(target, deltaMs float64) float64 {
	v.target = target

	if !v.initialized || math.IsNaN(v.current) || math.IsInf(v.current, 0) {
		v.current = target
		v.initialized = true
		return v.current
	}

	if v.params.MaxDeltaMs > 0 {
		deltaMs = min(deltaMs, v.params.MaxDeltaMs)
	}
	deltaMs = max(deltaMs, 0)

	k := 1.0
	if v.params.Rate > 0 {
		k = min(v.params.Rate*deltaMs, 1)
	}
	diff := target - v.current
	if v.closeEnough(diff) {
		v.current = target
	} else {
		v.current += k * diff
		if v.closeEnough(target - v.current) {
			v.current = target
		}
	}
	return v.current
}

// SetTarget changes the target without advancing the value.
func (v *Value) SetTarget(target float64) {
	v.target = target
	if !v.initialized {
		v.current = target
		v.initialized = true
	}
}

// Snap jumps to x and makes it the target.
func (v *Value) Snap(x float64) {
	v.current = x
	v.target = x
	v.initialized = true
}

// Start initializes the value at x without changing an already set target.
//
// Used for quantities that must animate from a specific value on their
// first appearance, such as a label fading in from zero.
func (v *Value) Start(x float64) {
	v.current = x
	if !v.initialized {
		v.target = x
	}
	v.initialized = true
}

// SetEpsilon changes the convergence threshold, for quantities whose
// meaningful precision depends on the data.
func (v *Value) SetEpsilon(eps float64) {
	v.params.Epsilon = eps
}

// Current returns the rendered value.
func (v *Value) Current() float64 {
	return v.current
}

// Target returns the value being chased.
func (v *Value) Target() float64 {
	return v.target
}

// Initialized reports whether the value has been given a target yet.
func (v *Value) Initialized() bool {
	return v.initialized
}

// Converging reports whether another step would still move the value.
func (v *Value) Converging() bool {
	return v.initialized && !v.closeEnough(v.target-v.current)
}

func (v *Value) closeEnough(diff float64) bool {
	eps := v.params.Epsilon
	if v.params.Relative {
		eps = max(eps*math.Abs(v.target), minRelativeEpsilon)
	}
	if eps <= 0 {
		return diff == 0
	}
	return math.Abs(diff) < eps
}
