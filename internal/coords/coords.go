// Package coords translates between the coordinate spaces of a chart.
//
// There are four of them:
//   - timeline-index space: integer positions into the shared timeline;
//   - data-timestamp space: the timeline's own values;
//   - virtual-pixel space: the full timeline laid out at the current zoom,
//     virtualWidth pixels wide;
//   - screen-pixel space: the containerWidth-wide slice of virtual space
//     that is visible, obtained by translating by the viewport offset.
//
// Every function here is pure.
package coords

import (
	"math"
	"sort"
)

// VirtualWidth returns the width the whole timeline would occupy at the
// zoom implied by a viewport of the given start and end.
//
// A degenerate viewport is treated as the full timeline.
func VirtualWidth(containerWidth, start, end float64) float64 {
	span := end - start
	if !(span > 0) || math.IsInf(span, 0) {
		return containerWidth
	}
	return containerWidth / span
}

// ViewportOffsetX returns the horizontal translation that aligns the
// visible slice of virtual space with the container's left edge.
func ViewportOffsetX(virtualWidth, start float64) float64 {
	return -virtualWidth * start
}

// YForValue maps a data value to a canvas y coordinate. The lower border
// sits on chartHeight and values grow upward.
func YForValue(v, lowerBorder, zoomRatio, chartHeight float64) float64 {
	return chartHeight - (v-lowerBorder)*zoomRatio
}

// Mapper maps timeline indexes to horizontal pixels.
//
// The timeline must hold at least two strictly increasing values.
type Mapper struct {
	timeline []float64
}

func NewMapper(timeline []float64) Mapper {
	return Mapper{timeline: timeline}
}

// Len returns the number of timeline points.
func (m Mapper) Len() int {
	return len(m.timeline)
}

// Span returns the distance between the first and last timestamps.
func (m Mapper) Span() float64 {
	if len(m.timeline) < 2 {
		return 0
	}
	return m.timeline[len(m.timeline)-1] - m.timeline[0]
}

// First returns the first timestamp.
func (m Mapper) First() float64 {
	return m.timeline[0]
}

// Last returns the last timestamp.
func (m Mapper) Last() float64 {
	return m.timeline[len(m.timeline)-1]
}

// At returns the timestamp at index i.
func (m Mapper) At(i int) float64 {
	return m.timeline[i]
}

// RatioX returns virtual pixels per timestamp unit.
func (m Mapper) RatioX(virtualWidth float64) float64 {
	span := m.Span()
	if span <= 0 {
		return 0
	}
	return virtualWidth / span
}

// XForTimestamp maps a timestamp to a virtual-space x coordinate.
func (m Mapper) XForTimestamp(ts, virtualWidth float64) float64 {
	return (ts - m.timeline[0]) * m.RatioX(virtualWidth)
}

// XForIndex maps a timeline index to a virtual-space x coordinate.
func (m Mapper) XForIndex(i int, virtualWidth float64) float64 {
	return m.XForTimestamp(m.timeline[i], virtualWidth)
}

// TimestampAt returns the timestamp at a fraction of the timeline span.
func (m Mapper) TimestampAt(fraction float64) float64 {
	return m.timeline[0] + fraction*m.Span()
}

// IndexAt resolves a raw pointer x to the nearest timeline index.
//
// The pointer is first moved into virtual space by removing the viewport
// offset and the canvas padding. The result is clamped to the timeline.
func (m Mapper) IndexAt(pointerX, offsetX, padding, virtualWidth float64) int {
	if len(m.timeline) == 0 {
		return 0
	}
	virtualX := pointerX - offsetX - padding
	ratio := m.RatioX(virtualWidth)
	if ratio <= 0 || math.IsNaN(virtualX) {
		return 0
	}
	return m.NearestIndex(m.timeline[0] + virtualX/ratio)
}

// NearestIndex returns the index whose timestamp is closest to ts.
//
// Ties go to the later index, matching rounding half up on a uniform
// timeline.
func (m Mapper) NearestIndex(ts float64) int {
	n := len(m.timeline)
	if n == 0 {
		return 0
	}
	i := sort.SearchFloat64s(m.timeline, ts)
	switch {
	case i <= 0:
		return 0
	case i >= n:
		return n - 1
	}
	if ts-m.timeline[i-1] < m.timeline[i]-ts {
		return i - 1
	}
	return i
}

// IndexRange returns the half-open index range [lo, hi) of timestamps
// that fall within [startTs, endTs].
func (m Mapper) IndexRange(startTs, endTs float64) (lo, hi int) {
	lo = sort.SearchFloat64s(m.timeline, startTs)
	hi = sort.Search(len(m.timeline), func(i int) bool {
		return m.timeline[i] > endTs
	})
	return lo, hi
}

// ClipSegment clips the segment from (x0, y0) to (x1, y1) to the rectangle
// [minX, maxX] × [minY, maxY] using the Liang-Barsky algorithm.
//
// The last result is false when no part of the segment lies inside the
// rectangle or a coordinate is not finite.
func ClipSegment(
	x0, y0, x1, y1 float64,
	minX, minY, maxX, maxY float64,
) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	if !isFinite(x0) || !isFinite(y0) || !isFinite(dx) || !isFinite(dy) {
		return 0, 0, 0, 0, false
	}

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			// Parallel to this edge.
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}

	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
