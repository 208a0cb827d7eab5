package selection

import "math"

// DefaultSlop is how far in pixels a pressed pointer may travel before the
// gesture turns from selecting into panning.
const DefaultSlop = 6

// Action is what a pointer event on the main chart should do.
type Action int

const (
	ActionNone Action = iota

	// ActionSelect moves the selection to the pointer.
	ActionSelect

	// ActionPan moves the viewport by the returned distance.
	ActionPan
)

// Drag interprets pointer events on the main chart.
//
// A press selects the point under the pointer and so do movements that
// stay within the slop distance. Past it the gesture becomes a pan and
// stays one until release.
type Drag struct {
	Slop float64

	pressed bool
	panning bool
	originX float64
	lastX   float64
}

// Press starts a gesture at x.
func (d *Drag) Press(x float64) Action {
	d.pressed = true
	d.panning = false
	d.originX = x
	d.lastX = x
	return ActionSelect
}

// Move handles a pointer movement to x. For ActionPan it also returns the
// horizontal distance moved since the previous event.
//
// Movement without a press is a hover and selects.
func (d *Drag) Move(x float64) (Action, float64) {
	if !d.pressed {
		return ActionSelect, 0
	}

	if !d.panning {
		slop := d.Slop
		if slop <= 0 {
			slop = DefaultSlop
		}
		if math.Abs(x-d.originX) <= slop {
			d.lastX = x
			return ActionSelect, 0
		}
		d.panning = true
		d.lastX = d.originX
	}

	dx := x - d.lastX
	d.lastX = x
	return ActionPan, dx
}

// Release ends the gesture and reports whether it was a pan.
func (d *Drag) Release() bool {
	wasPan := d.panning
	d.pressed = false
	d.panning = false
	return wasPan
}

// Pressed reports whether a gesture is in progress.
func (d *Drag) Pressed() bool {
	return d.pressed
}

// Panning reports whether the gesture in progress is a pan.
func (d *Drag) Panning() bool {
	return d.panning
}
