// Package viewport holds the normalized time window shown by a chart and
// its overview strip.
package viewport

import (
	"fmt"
	"math"

	"github.com/wandb/timechart/internal/observability"
)

// DefaultMinWidth is the narrowest window a Viewport allows unless
// configured otherwise.
const DefaultMinWidth = 0.01

// Range is a window into the timeline, as fractions of its span.
//
// A valid Range satisfies 0 <= Start < End <= 1.
type Range struct {
	Start float64
	End   float64
}

// Full is the range covering the whole timeline.
var Full = Range{Start: 0, End: 1}

func (r Range) Width() float64 {
	return r.End - r.Start
}

// Center returns the midpoint of the range.
func (r Range) Center() float64 {
	return (r.Start + r.End) / 2
}

func (r Range) Valid() bool {
	return r.Start >= 0 && r.End <= 1 && r.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%.4f, %.4f]", r.Start, r.End)
}

// Viewport owns the visible Range and notifies subscribers of every
// change.
//
// Every write is normalized into a valid Range no narrower than the
// minimum width, so a Viewport never holds an invalid value.
type Viewport struct {
	rng      Range
	minWidth float64
	subject  *Subject[Range]
	logger   *observability.CoreLogger
}

// New returns a Viewport starting at initial, normalized against Full.
func New(
	initial Range,
	minWidth float64,
	logger *observability.CoreLogger,
) *Viewport {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	v := &Viewport{
		rng:      Full,
		minWidth: clampMinWidth(minWidth),
		subject:  NewSubject[Range](logger),
		logger:   logger,
	}
	v.rng = v.normalize(initial)
	return v
}

// Get returns the current range.
func (v *Viewport) Get() Range {
	return v.rng
}

// MinWidth returns the narrowest allowed width.
func (v *Viewport) MinWidth() float64 {
	return v.minWidth
}

// SetMinWidth changes the narrowest allowed width and re-normalizes the
// current range.
func (v *Viewport) SetMinWidth(w float64) {
	v.minWidth = clampMinWidth(w)
	v.Set(v.rng)
}

// Subscribe registers fn to be called synchronously with every new range.
func (v *Viewport) Subscribe(fn func(Range)) (unsubscribe func()) {
	return v.subject.Subscribe(fn)
}

// Set normalizes r, stores it and publishes it if it differs from the
// current range. It returns the stored range.
//
// Out-of-bounds values saturate at the edges. A NaN bound keeps its
// previous value. A range narrower than the minimum width is widened,
// moving the bound that changed.
func (v *Viewport) Set(r Range) Range {
	next := v.normalize(r)
	if next != r {
		v.logger.Debug(fmt.Sprintf("viewport: normalized %v to %v", r, next))
	}
	if next == v.rng {
		return next
	}
	v.rng = next
	v.subject.Publish(next)
	return next
}

// Pan moves the window by delta while keeping its width, stopping at the
// timeline's edges.
func (v *Viewport) Pan(delta float64) Range {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return v.rng
	}
	width := v.rng.Width()
	start := clamp(v.rng.Start+delta, 0, 1-width)
	return v.Set(Range{Start: start, End: start + width})
}

// Zoom scales the window width by factor around anchor, a fraction of the
// timeline. A factor below one zooms in.
func (v *Viewport) Zoom(factor, anchor float64) Range {
	if !(factor > 0) || math.IsInf(factor, 0) || math.IsNaN(anchor) {
		return v.rng
	}
	width := v.rng.Width()
	newWidth := clamp(width*factor, v.minWidth, 1)
	anchor = clamp(anchor, v.rng.Start, v.rng.End)

	start := anchor - (anchor-v.rng.Start)*newWidth/width
	start = clamp(start, 0, 1-newWidth)
	return v.Set(Range{Start: start, End: start + newWidth})
}

func (v *Viewport) normalize(r Range) Range {
	prev := v.rng
	if math.IsNaN(r.Start) {
		r.Start = prev.Start
	}
	if math.IsNaN(r.End) {
		r.End = prev.End
	}
	r.Start = clamp(r.Start, 0, 1)
	r.End = clamp(r.End, 0, 1)

	if r.End-r.Start >= v.minWidth {
		return r
	}

	// Keep the bound that did not move; grow the other one.
	if r.Start != prev.Start && r.End == prev.End {
		r.Start = r.End - v.minWidth
	} else {
		r.End = r.Start + v.minWidth
	}
	if r.Start < 0 {
		r.Start = 0
		r.End = v.minWidth
	}
	if r.End > 1 {
		r.End = 1
		r.Start = 1 - v.minWidth
	}
	return r
}

func clampMinWidth(w float64) float64 {
	if !(w > 0) {
		return DefaultMinWidth
	}
	return min(w, 1)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
