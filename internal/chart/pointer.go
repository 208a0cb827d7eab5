package chart

import (
	"fmt"

	"github.com/wandb/timechart/internal/selection"
)

// PointerDown starts a gesture on the main chart at screen x.
func (c *Chart) PointerDown(x float64) {
	c.drag.Press(x)
	c.selectAt(x)
}

// PointerMove handles a pointer movement over the main chart. Hovering
// and small movements of a pressed pointer move the selection. Larger
// ones pan the viewport and clear it.
func (c *Chart) PointerMove(x float64) {
	action, dx := c.drag.Move(x)
	switch action {
	case selection.ActionSelect:
		c.selectAt(x)
	case selection.ActionPan:
		g := c.layout()
		if g.VirtualWidth <= 0 {
			return
		}
		c.clearSelection()
		c.vp.Pan(-dx / g.VirtualWidth)
	}
}

// PointerUp ends the gesture on the main chart.
func (c *Chart) PointerUp(x float64) {
	if c.drag.Release() {
		c.logger.Debug(fmt.Sprintf("chart: pan ended at %.1f, viewport %v", x, c.vp.Get()))
	}
}

// MinimapPointerDown starts a slider gesture at x on the overview strip.
// It reports whether x hit the slider; the rest of the gesture arrives
// through the pointer capture.
func (c *Chart) MinimapPointerDown(x float64) bool {
	return c.slider.Begin(x) != nil
}

// ClearSelection hides the tooltip and the selection line.
func (c *Chart) ClearSelection() {
	c.clearSelection()
}

// TooltipData resolves the data under screen x without changing the
// selection.
func (c *Chart) TooltipData(x float64) (selection.Tooltip, bool) {
	g := c.layout()
	return selection.Resolve(c.mapper, c.selectionSeries(), x, g.OffsetX, 0, g.VirtualWidth)
}

// Selection returns the selected data and where a tooltip box of the given
// width goes. The last result is false when nothing is selected or every
// series is hidden.
func (c *Chart) Selection(boxWidth float64) (selection.Tooltip, selection.Placement, bool) {
	index, _, ok := c.selected.Selected()
	if !ok {
		return selection.Tooltip{}, selection.Placement{}, false
	}
	g := c.layout()
	tip, ok := selection.At(c.mapper, c.selectionSeries(), index, g.VirtualWidth)
	if !ok {
		return selection.Tooltip{}, selection.Placement{}, false
	}
	place := selection.Place(tip.X+g.OffsetX, boxWidth, c.mainSize.Width, c.params.Layout.TooltipGap)
	return tip, place, true
}

func (c *Chart) selectAt(x float64) {
	tip, ok := c.TooltipData(x)
	if !ok {
		c.clearSelection()
		return
	}
	if index, _, was := c.selected.Selected(); was && index == tip.Index {
		return
	}
	c.selected.Select(tip.Index, tip.X)
	c.invalidateLabels()
}

func (c *Chart) clearSelection() {
	if _, _, ok := c.selected.Selected(); !ok {
		return
	}
	c.selected.Clear()
	c.invalidateLabels()
}

func (c *Chart) invalidateLabels() {
	if c.sched.InvalidateLabels() && c.requestFrame != nil {
		c.requestFrame()
	}
}

func (c *Chart) selectionSeries() []selection.Series {
	out := make([]selection.Series, 0, len(c.series))
	for _, s := range c.series {
		out = append(out, selection.Series{
			ID:      s.ID,
			Name:    s.Name,
			Color:   s.color.Hex(),
			Values:  s.Values,
			Visible: s.visible,
		})
	}
	return out
}
