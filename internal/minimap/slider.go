// Package minimap implements the window slider of the overview strip: a
// draggable box over the whole timeline with a resize handle on each side.
package minimap

import (
	"fmt"
	"math"

	"github.com/wandb/timechart/internal/observability"
	"github.com/wandb/timechart/internal/viewport"
)

const (
	// DefaultMinWidth is the narrowest the slider window can be made, in
	// pixels.
	DefaultMinWidth = 40

	// DefaultHandleWidth is the width in pixels of the grab zone around
	// each edge of the window.
	DefaultHandleWidth = 8
)

// Mode is the state of the slider's gesture state machine.
type Mode int

const (
	Idle Mode = iota
	Moving
	ResizingLeft
	ResizingRight
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case ResizingLeft:
		return "resizing-left"
	case ResizingRight:
		return "resizing-right"
	default:
		return "unknown"
	}
}

// Target is the part of the slider under a pointer.
type Target int

const (
	TargetNone Target = iota
	TargetBody
	TargetLeftHandle
	TargetRightHandle
)

func (t Target) mode() Mode {
	switch t {
	case TargetBody:
		return Moving
	case TargetLeftHandle:
		return ResizingLeft
	case TargetRightHandle:
		return ResizingRight
	default:
		return Idle
	}
}

// Params configures a Slider.
type Params struct {
	// MinWidth is the narrowest window in pixels.
	MinWidth float64

	// HandleWidth is the half-width in pixels of the grab zone around
	// each window edge.
	HandleWidth float64
}

// Slider translates gestures on the overview strip into viewport writes.
//
// Its visual position follows the viewport through a subscription, so
// writes from any other source move the window too. It never writes to
// the viewport from that subscription.
type Slider struct {
	vp      *viewport.Viewport
	capture PointerCapture
	params  Params
	logger  *observability.CoreLogger

	width       float64
	left, right float64

	gesture     *Gesture
	unsubscribe func()
}

func NewSlider(
	vp *viewport.Viewport,
	capture PointerCapture,
	params Params,
	logger *observability.CoreLogger,
) *Slider {
	if params.MinWidth <= 0 {
		params.MinWidth = DefaultMinWidth
	}
	if params.HandleWidth <= 0 {
		params.HandleWidth = DefaultHandleWidth
	}
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	if capture == nil {
		capture = noCapture{}
	}

	s := &Slider{
		vp:      vp,
		capture: capture,
		params:  params,
		logger:  logger,
	}
	s.unsubscribe = vp.Subscribe(s.follow)
	return s
}

// Close stops following the viewport and cancels any gesture in progress.
func (s *Slider) Close() {
	if s.gesture != nil {
		s.gesture.Cancel()
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Resize sets the strip width in pixels.
//
// The minimum window width in pixels becomes a minimum viewport width.
func (s *Slider) Resize(width float64) {
	if !(width > 0) || math.IsInf(width, 0) {
		return
	}
	s.width = width
	s.vp.SetMinWidth(math.Min(s.params.MinWidth/width, 1))
	s.follow(s.vp.Get())
}

// Bounds returns the window's left and right edges in pixels.
func (s *Slider) Bounds() (left, right float64) {
	return s.left, s.right
}

// Width returns the strip width in pixels.
func (s *Slider) Width() float64 {
	return s.width
}

// Mode returns the state of the gesture in progress.
func (s *Slider) Mode() Mode {
	if s.gesture == nil {
		return Idle
	}
	return s.gesture.mode
}

// HitTest returns the part of the slider at x.
//
// When the window is so narrow that the handle zones overlap, the nearer
// edge wins.
func (s *Slider) HitTest(x float64) Target {
	if s.width <= 0 || math.IsNaN(x) {
		return TargetNone
	}
	hw := s.params.HandleWidth
	dl := math.Abs(x - s.left)
	dr := math.Abs(x - s.right)

	switch {
	case dl <= hw && dl <= dr:
		return TargetLeftHandle
	case dr <= hw:
		return TargetRightHandle
	case x > s.left && x < s.right:
		return TargetBody
	default:
		return TargetNone
	}
}

// Begin starts a gesture at x and captures the pointer for it. It returns
// nil when x is not on the slider.
//
// A gesture still in progress is cancelled first.
func (s *Slider) Begin(x float64) *Gesture {
	target := s.HitTest(x)
	if target == TargetNone {
		return nil
	}
	if s.gesture != nil {
		s.logger.Debug("minimap: cancelling unfinished gesture")
		s.gesture.Cancel()
	}

	g := &Gesture{
		slider:      s,
		mode:        target.mode(),
		originX:     x,
		originLeft:  s.left,
		originRight: s.right,
	}
	s.gesture = g
	g.release = s.capture.Capture(g)
	s.logger.Debug(fmt.Sprintf("minimap: began %v at %.1f", g.mode, x))
	return g
}

// follow moves the window to match r.
func (s *Slider) follow(r viewport.Range) {
	s.left = r.Start * s.width
	s.right = r.End * s.width
}

// apply writes a window in pixels to the viewport.
func (s *Slider) apply(left, right float64) {
	if s.width <= 0 {
		return
	}
	s.vp.Set(viewport.Range{Start: left / s.width, End: right / s.width})
}

func (s *Slider) finish(g *Gesture) {
	if s.gesture == g {
		s.gesture = nil
	}
}
