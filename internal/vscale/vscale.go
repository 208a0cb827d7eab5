// Package vscale resolves the vertical scale of a chart: the value range
// visible in a time window and the gridline-aligned lower border.
package vscale

import (
	"math"
	"time"

	"github.com/wandb/timechart/internal/coords"
	"github.com/wandb/timechart/internal/throttle"
)

const (
	// DefaultHorizontalLines is the number of gridline intervals on the
	// vertical axis.
	DefaultHorizontalLines = 5

	// MinSpan is the value range assumed when every visible point has the
	// same value, so that a zoom ratio is always finite.
	MinSpan = 1.0

	// marginFraction is the relative padding applied to both borders.
	marginFraction = 0.01

	maxSearchIterations = 64
)

// Borders is a [Min, Max] value range.
type Borders struct {
	Min, Max float64
}

// Span returns Max - Min.
func (b Borders) Span() float64 {
	return b.Max - b.Min
}

// Scale is the resolved vertical scale of a chart.
type Scale struct {
	Borders
	// Lower is the value the bottom gridline sits on.
	Lower float64
}

// ZoomRatio returns the pixels per value unit needed to fit the range
// [lower, max] into height pixels.
func ZoomRatio(height, max, lower float64) float64 {
	span := max - lower
	if !(span > 0) || math.IsInf(span, 0) {
		span = MinSpan
	}
	return height / span
}

// VerticalBorders returns the range of the values of the given series whose
// timestamp falls in [startTs, endTs], padded by a one percent margin and
// floored to three decimals.
//
// The second result is false when there is nothing to scan: no series, or
// no timestamps in the window.
func VerticalBorders(
	timeline []float64,
	series [][]float64,
	startTs, endTs float64,
) (Borders, bool) {
	lo, hi := coords.NewMapper(timeline).IndexRange(startTs, endTs)
	if len(series) == 0 || lo >= hi {
		return Borders{}, false
	}

	minValue := math.Inf(1)
	maxValue := math.Inf(-1)
	for _, values := range series {
		end := min(hi, len(values))
		for j := lo; j < end; j++ {
			v := values[j]
			if math.IsNaN(v) {
				continue
			}
			minValue = math.Min(minValue, v)
			maxValue = math.Max(maxValue, v)
		}
	}
	if math.IsInf(minValue, 1) {
		return Borders{}, false
	}

	b := Borders{
		Min: floor3(minValue - math.Abs(minValue)*marginFraction),
		Max: floor3(maxValue + math.Abs(maxValue)*marginFraction),
	}
	if b.Span() <= 0 {
		b.Max = b.Min + MinSpan
	}
	return b, true
}

// LowerBorder finds a lower border for the range [minY, maxY] such that
// gridlines spaced evenly from it up to maxY land on stable values.
//
// Starting from candidate, it lays out lines+1 gridlines between the
// candidate and maxY and moves the candidate onto the gridline just below
// minY, repeating until the candidate no longer moves. The result is
// floored, and LowerBorder(minY, maxY, LowerBorder(minY, maxY, c)) returns
// the same value.
func LowerBorder(minY, maxY, candidate float64, lines int) float64 {
	if lines <= 0 {
		lines = DefaultHorizontalLines
	}
	if !isFinite(minY) || !isFinite(maxY) {
		return candidate
	}
	if !isFinite(candidate) {
		candidate = 0
	}

	c := candidate
	for range maxSearchIterations {
		next, ok := settle(minY, maxY, c, lines)
		if !ok {
			return math.Floor(math.Min(c, minY))
		}
		floored := math.Floor(next)
		if floored == c {
			return floored
		}
		c = floored
	}
	return c
}

// settle moves the candidate gridline by gridline until it sits on the
// last gridline not above minY.
func settle(minY, maxY, candidate float64, lines int) (float64, bool) {
	c := candidate
	for range maxSearchIterations {
		dim := (maxY - c) / float64(lines)
		if !(dim > 0) {
			return c, false
		}

		first := -1
		for i := 0; i <= lines; i++ {
			if c+float64(i)*dim > minY {
				first = i
				break
			}
		}
		if first < 0 {
			return c, false
		}
		if first == 1 {
			return c, true
		}
		c += float64(first-1) * dim
	}
	return c, true
}

// Resolver computes the vertical scale of a chart, running the full scan
// at most once per interval.
type Resolver struct {
	throttle *throttle.Throttle[Scale]
	lines    int

	prev    Scale
	hasPrev bool
}

// NewResolver returns a Resolver that rescans at most once per interval.
func NewResolver(interval time.Duration, lines int) *Resolver {
	if lines <= 0 {
		lines = DefaultHorizontalLines
	}
	return &Resolver{
		throttle: throttle.New[Scale](interval),
		lines:    lines,
		prev:     Scale{Borders: Borders{Max: MinSpan}},
	}
}

// Resolve returns the scale of the active series over [startTs, endTs].
//
// Within the throttle interval the previous result is returned. When no
// series is active the last computed scale is kept.
func (r *Resolver) Resolve(
	now time.Time,
	timeline []float64,
	active [][]float64,
	startTs, endTs float64,
) Scale {
	return r.throttle.Call(now, func() Scale {
		b, ok := VerticalBorders(timeline, active, startTs, endTs)
		if !ok {
			return r.prev
		}
		r.prev = Scale{
			Borders: b,
			Lower:   LowerBorder(b.Min, b.Max, 0, r.lines),
		}
		r.hasPrev = true
		return r.prev
	})
}

// Flush makes the next Resolve rescan regardless of the interval.
func (r *Resolver) Flush() {
	r.throttle.ForceFlush()
}

// Pending reports whether a rescan was skipped since the last one.
func (r *Resolver) Pending() bool {
	return r.throttle.Pending()
}

// Last returns the last computed scale and whether one was computed.
func (r *Resolver) Last() (Scale, bool) {
	return r.prev, r.hasPrev
}

func floor3(v float64) float64 {
	return math.Floor(v*1000) / 1000
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
