package termview

import (
	"github.com/wandb/timechart/internal/minimap"
)

// pointerCapture routes mouse events to the overview strip gesture in
// progress, wherever the pointer is.
type pointerCapture struct {
	listener minimap.Listener
}

var _ minimap.PointerCapture = (*pointerCapture)(nil)

func (c *pointerCapture) Capture(l minimap.Listener) func() {
	c.listener = l
	return func() {
		if c.listener == l {
			c.listener = nil
		}
	}
}

// Active reports whether a gesture holds the pointer.
func (c *pointerCapture) Active() bool {
	return c.listener != nil
}

func (c *pointerCapture) Move(x float64) {
	if c.listener != nil {
		c.listener.Move(x)
	}
}

func (c *pointerCapture) End(x float64) {
	if c.listener != nil {
		c.listener.End(x)
	}
}

// Cancel ends the gesture in progress without moving the window, for when
// the program stops receiving the pointer's events.
func (c *pointerCapture) Cancel() {
	if c.listener != nil {
		c.listener.Cancel()
	}
}
