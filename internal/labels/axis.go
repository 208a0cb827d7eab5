package labels

import (
	"math"
	"time"
)

const (
	// DefaultDensityCoefficient controls how far the viewport must zoom
	// before the date label step halves.
	DefaultDensityCoefficient = 1.68

	// DefaultXLabelCount is the number of date labels across the whole
	// timeline at full zoom-out.
	DefaultXLabelCount = 5

	maxHalvings = 64
	maxXLabels  = 4096
)

// YAxis builds the desired gridline labels of the vertical axis.
type YAxis struct {
	// Lines is the number of gridline intervals.
	Lines int

	// TopOffset is the space in pixels kept free above the top gridline.
	TopOffset float64
}

// Desired returns the gridline labels for a chart of the given height
// scaled by ratioY pixels per unit with its bottom gridline on lower.
//
// Values are floored to three decimals so that a gridline that settles on
// the same value from two nearby scales maps to the same key.
func (a YAxis) Desired(ratioY, lower, chartHeight float64) []Desired[float64] {
	if !(ratioY > 0) || math.IsInf(ratioY, 0) || math.IsNaN(lower) {
		return nil
	}
	lines := a.Lines
	if lines <= 0 {
		lines = 5
	}

	maxY := (chartHeight - a.TopOffset) / ratioY
	dim := maxY / float64(lines)

	desired := make([]Desired[float64], 0, lines+1)
	seen := make(map[float64]bool, lines+1)
	for i := 0; i <= lines; i++ {
		v := math.Floor((dim*float64(i)+lower)*1000) / 1000
		if seen[v] {
			continue
		}
		seen[v] = true
		desired = append(desired, Desired[float64]{
			Key:   v,
			Value: v,
			Text:  FormatValue(v),
		})
	}
	return desired
}

// XAxis builds the desired date labels of the horizontal axis.
type XAxis struct {
	// Count is the number of labels across the whole timeline when fully
	// zoomed out.
	Count int

	// Density is the coefficient of the step halving rule.
	Density float64
}

// Step returns the distance in timestamp units between consecutive date
// labels for a viewport covering the given fraction of the timeline.
//
// Starting from span/Count, the step halves while it exceeds
// span/Count × Density × viewportWidth.
func (a XAxis) Step(span, viewportWidth float64) float64 {
	count := a.Count
	if count <= 0 {
		count = DefaultXLabelCount
	}
	density := a.Density
	if density <= 0 {
		density = DefaultDensityCoefficient
	}

	base := span / float64(count)
	step := base
	if !(viewportWidth > 0) || !(base > 0) {
		return step
	}

	limit := base * density * viewportWidth
	for i := 0; i < maxHalvings && step > limit; i++ {
		step /= 2
	}
	return step
}

// Desired returns the date labels for a timeline running from first to
// last when a fraction viewportWidth of it is visible.
//
// Labels are keyed by their text and when two timestamps format the same
// only the earlier one is kept. The last timestamp always gets a label,
// taking over its text from an earlier timestamp if needed.
func (a XAxis) Desired(first, last, viewportWidth float64) []Desired[string] {
	span := last - first
	if !(span > 0) {
		return nil
	}
	step := a.Step(span, viewportWidth)

	var desired []Desired[string]
	seen := make(map[string]bool)
	add := func(ts float64) {
		text := FormatDate(ts)
		if seen[text] {
			return
		}
		seen[text] = true
		desired = append(desired, Desired[string]{Key: text, Value: ts, Text: text})
	}

	for i := 0; i < maxXLabels; i++ {
		ts := first + float64(i)*step
		if ts >= last {
			break
		}
		add(ts)
	}

	// The last point owns its text so that it stays right-aligned.
	lastText := FormatDate(last)
	if !seen[lastText] {
		add(last)
	}
	for i := range desired {
		if desired[i].Key == lastText {
			desired[i].Value = last
		}
	}
	return desired
}

// Alignment of a date label relative to its timestamp.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

// AlignmentFor returns how the label at ts is anchored: the label on the
// first timestamp starts at it, the one on the last ends at it, and every
// other label is centred on it.
func AlignmentFor(ts, first, last float64) Alignment {
	switch ts {
	case first:
		return AlignLeft
	case last:
		return AlignRight
	default:
		return AlignCenter
	}
}

// Offset returns the horizontal offset to apply to a label of the given
// width drawn with the given alignment.
func (a Alignment) Offset(width float64) float64 {
	switch a {
	case AlignLeft:
		return 0
	case AlignRight:
		return -width
	default:
		return -width / 2
	}
}

// timeOf converts a millisecond timestamp to a UTC time.
func timeOf(ts float64) time.Time {
	return time.UnixMilli(int64(math.Round(ts))).UTC()
}
