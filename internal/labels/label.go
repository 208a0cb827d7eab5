// Package labels tracks the gridline and date labels of a chart axis as
// they fade in and out while the visible scale changes.
package labels

import "github.com/wandb/timechart/internal/spring"

// State is the lifecycle phase of a tracked label.
type State int

const (
	// Appearing labels are fading in toward full opacity.
	Appearing State = iota

	// Visible labels are at full opacity.
	Visible

	// Fading labels are on their way out and are deleted by Prune once
	// fully transparent.
	Fading
)

func (s State) String() string {
	switch s {
	case Appearing:
		return "appearing"
	case Visible:
		return "visible"
	case Fading:
		return "fading"
	default:
		return "unknown"
	}
}

// Label is one tracked axis label.
type Label[K comparable] struct {
	// ID is unique within the Manager that created the label and never
	// changes.
	ID uint64

	Key K

	// Value is the position of the label in data space: the gridline
	// value for the vertical axis, the timestamp for the horizontal one.
	Value float64

	Text string

	opacity spring.Value
	stroke  spring.Value
}

// Opacity returns the current text opacity in [0, 1].
func (l *Label[K]) Opacity() float64 {
	return l.opacity.Current()
}

// StrokeOpacity returns the current gridline opacity in [0, 1].
func (l *Label[K]) StrokeOpacity() float64 {
	return l.stroke.Current()
}

// TargetOpacity returns the text opacity the label is animating toward.
func (l *Label[K]) TargetOpacity() float64 {
	return l.opacity.Target()
}

func (l *Label[K]) State() State {
	switch {
	case l.opacity.Target() == 0:
		return Fading
	case l.opacity.Current() < l.opacity.Target() ||
		l.stroke.Current() < l.stroke.Target():
		return Appearing
	default:
		return Visible
	}
}

// Desired describes a label that should be shown after a recompute.
type Desired[K comparable] struct {
	Key   K
	Value float64
	Text  string
}
