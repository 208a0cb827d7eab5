package minimap

import "math"

// Listener receives the pointer events of a captured gesture.
type Listener interface {
	Move(x float64)
	End(x float64)
	Cancel()
}

// PointerCapture routes a pointer's events to a listener until released.
//
// The host implements it with whatever it uses for global pointer
// tracking. Capture must return a function that stops the routing; it is
// called exactly once per capture.
type PointerCapture interface {
	Capture(l Listener) (release func())
}

type noCapture struct{}

func (noCapture) Capture(Listener) func() { return func() {} }

// Gesture is one drag on the slider, from press to release or
// cancellation.
type Gesture struct {
	slider  *Slider
	mode    Mode
	release func()
	done    bool

	originX     float64
	originLeft  float64
	originRight float64
}

// Mode returns what the gesture does.
func (g *Gesture) Mode() Mode {
	return g.mode
}

// Done reports whether the gesture has ended or been cancelled.
func (g *Gesture) Done() bool {
	return g.done
}

// Move updates the window for a pointer at x.
func (g *Gesture) Move(x float64) {
	if g.done || math.IsNaN(x) {
		return
	}
	s := g.slider
	dx := x - g.originX
	width := s.width
	minWidth := math.Min(s.params.MinWidth, width)
	left, right := g.originLeft, g.originRight

	switch g.mode {
	case Moving:
		w := right - left
		left = clamp(left+dx, 0, width-w)
		right = left + w
	case ResizingLeft:
		left = clamp(left+dx, 0, right-minWidth)
	case ResizingRight:
		right = clamp(right+dx, left+minWidth, width)
	}
	s.apply(left, right)
}

// End applies the final position and releases the pointer.
func (g *Gesture) End(x float64) {
	if g.done {
		return
	}
	g.Move(x)
	g.finish()
}

// Cancel releases the pointer, leaving the window where it is.
func (g *Gesture) Cancel() {
	g.finish()
}

func (g *Gesture) finish() {
	if g.done {
		return
	}
	g.done = true
	if g.release != nil {
		g.release()
		g.release = nil
	}
	g.slider.finish(g)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
