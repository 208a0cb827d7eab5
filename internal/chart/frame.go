package chart

import (
	"math"
	"time"

	"github.com/wandb/timechart/internal/coords"
	"github.com/wandb/timechart/internal/labels"
	"github.com/wandb/timechart/internal/scheduler"
	"github.com/wandb/timechart/internal/vscale"
)

// frame exposes the per-frame phases of a Chart to the scheduler.
type frame Chart

func (f *frame) Step(deltaMs float64) scheduler.Activity {
	return (*Chart)(f).step(deltaMs)
}

func (f *frame) Layout() {
	c := (*Chart)(f)
	c.geom = c.layout()
}

func (f *frame) DrawDatasets() {
	c := (*Chart)(f)
	c.drawDatasets()
	c.drawMinimap()
}

func (f *frame) DrawLabels() {
	(*Chart)(f).drawLabels()
}

// step advances every animated quantity by one frame.
//
// The order matters: series visibility decides which series the scale is
// computed from, and the scale decides the label targets.
func (c *Chart) step(deltaMs float64) scheduler.Activity {
	var act scheduler.Activity
	c.clock = c.clock.Add(time.Duration(deltaMs * float64(time.Millisecond)))

	active := make([][]float64, 0, len(c.series))
	for _, s := range c.series {
		target := 0.0
		if s.visible {
			target = 1
			active = append(active, s.Values)
		}
		if step(&s.opacity, target, deltaMs) {
			act.DatasetsChanged = true
		}
		if s.opacity.Converging() {
			act.Animating = true
		}
	}

	r := c.vp.Get()
	q := scaleQuery{
		startTs:    c.mapper.TimestampAt(r.Start),
		endTs:      c.mapper.TimestampAt(r.End),
		visibility: c.visibility,
	}
	if !c.queried || q != c.query || c.resolver.Pending() {
		c.scale = c.resolver.Resolve(c.clock, c.timeline, active, q.startTs, q.endTs)
		c.query = q
		c.queried = true
	}
	if c.resolver.Pending() {
		act.Animating = true
	}

	height := c.chartHeight()
	targetRatio := vscale.ZoomRatio(height, c.scale.Max, c.scale.Lower)
	c.lower.SetEpsilon(scaleEpsilon * math.Max(c.scale.Max-c.scale.Lower, vscale.MinSpan))

	ratioMoved := step(&c.ratioY, targetRatio, deltaMs)
	lowerMoved := step(&c.lower, c.scale.Lower, deltaMs)
	if ratioMoved || lowerMoved {
		act.DatasetsChanged = true
		act.LabelsChanged = true
	}
	if c.ratioY.Converging() || c.lower.Converging() {
		act.Animating = true
	}

	if yq := (yLabelQuery{targetRatio, c.scale.Lower, height}); yq != c.yQuery {
		c.yLabels.Update(c.yAxis.Desired(targetRatio, c.scale.Lower, height))
		c.yQuery = yq
		act.LabelsChanged = true
	}
	if w := r.Width(); w != c.xWidth {
		c.xLabels.Update(c.xAxis.Desired(c.mapper.First(), c.mapper.Last(), w))
		c.xWidth = w
		act.LabelsChanged = true
	}

	yChanged, yAnimating := c.yLabels.Step(deltaMs)
	xChanged, xAnimating := c.xLabels.Step(deltaMs)
	c.yLabels.Prune()
	c.xLabels.Prune()
	if yChanged || xChanged {
		act.LabelsChanged = true
	}
	if yAnimating || xAnimating {
		act.Animating = true
	}

	miniChanged, miniAnimating := c.mini.step(c.series, deltaMs)
	if miniChanged {
		act.DatasetsChanged = true
	}
	if miniAnimating {
		act.Animating = true
	}

	return act
}

// layout derives the frame's pixel geometry from the viewport and the
// current spring values.
func (c *Chart) layout() Geometry {
	r := c.vp.Get()
	vw := coords.VirtualWidth(c.mainSize.Width, r.Start, r.End)
	return Geometry{
		Viewport:     r,
		VirtualWidth: vw,
		OffsetX:      coords.ViewportOffsetX(vw, r.Start),
		RatioX:       c.mapper.RatioX(vw),
		RatioY:       c.ratioY.Current(),
		Lower:        c.lower.Current(),
		ChartHeight:  c.chartHeight(),
		StartTs:      c.mapper.TimestampAt(r.Start),
		EndTs:        c.mapper.TimestampAt(r.End),
	}
}

// drawn reports whether an opacity is visible at two decimals.
func drawn(opacity float64) bool {
	return math.Round(opacity*100) > 0
}

func (c *Chart) drawDatasets() {
	if !c.mainSize.valid() {
		return
	}
	s := c.datasets
	g := c.geom

	s.ClearRect(0, 0, c.mainSize.Width, c.mainSize.Height)
	s.Save()
	defer s.Restore()
	s.SetTransform(1, 1, g.OffsetX, 0)
	s.SetLineWidth(c.params.Layout.LineWidth)

	lo, hi := c.mapper.IndexRange(g.StartTs, g.EndTs)
	lo = max(lo-1, 0)
	hi = min(hi+1, c.mapper.Len())

	for _, sr := range c.series {
		opacity := sr.opacity.Current()
		if !drawn(opacity) {
			continue
		}
		s.SetStrokeColor(sr.color.WithAlpha(opacity))
		s.BeginPath()
		plot(s, sr.Values, lo, hi, func(i int, v float64) (float64, float64) {
			return c.mapper.XForIndex(i, g.VirtualWidth),
				coords.YForValue(v, g.Lower, g.RatioY, g.ChartHeight)
		})
		s.Stroke()
	}
}

// plot traces values[lo:hi] as a polyline. Missing values lift the pen, so
// the line has a gap there instead of a segment to a bogus point.
func plot(s Surface, values []float64, lo, hi int, at func(i int, v float64) (x, y float64)) {
	penDown := false
	for i := lo; i < hi; i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			penDown = false
			continue
		}
		x, y := at(i, v)
		if penDown {
			s.LineTo(x, y)
		} else {
			s.MoveTo(x, y)
			penDown = true
		}
	}
}

func (c *Chart) drawLabels() {
	if !c.mainSize.valid() {
		return
	}
	s := c.labelLayer
	g := c.geom
	layout := c.params.Layout
	width := c.mainSize.Width

	s.ClearRect(0, 0, width, c.mainSize.Height)
	s.Save()
	defer s.Restore()
	s.SetTransform(1, 1, g.OffsetX, 0)
	s.SetLineWidth(layout.GridLineWidth)

	// The visible slice of virtual space starts at -OffsetX.
	left := -g.OffsetX

	c.yLabels.Each(func(l *labels.Label[float64]) {
		y := coords.YForValue(l.Value, g.Lower, g.RatioY, g.ChartHeight)
		if drawn(l.StrokeOpacity()) {
			s.SetStrokeColor(c.theme.Grid.WithAlpha(l.StrokeOpacity()))
			s.BeginPath()
			s.MoveTo(left, y)
			s.LineTo(left+width, y)
			s.Stroke()
		}
		if drawn(l.Opacity()) {
			s.SetFillColor(c.theme.Text.WithAlpha(l.Opacity()))
			s.FillText(l.Text, left+layout.YLabelInset, y-layout.YLabelLift)
		}
	})

	first, last := c.mapper.First(), c.mapper.Last()
	baseline := c.mainSize.Height - layout.XLabelBaseline
	c.xLabels.Each(func(l *labels.Label[string]) {
		if !drawn(l.Opacity()) {
			return
		}
		align := labels.AlignmentFor(l.Value, first, last)
		x := c.mapper.XForTimestamp(l.Value, g.VirtualWidth) + align.Offset(c.textWidth(l.Text))
		s.SetFillColor(c.theme.Text.WithAlpha(l.Opacity()))
		s.FillText(l.Text, x, baseline)
	})

	if index, _, ok := c.selected.Selected(); ok {
		x := c.mapper.XForIndex(index, g.VirtualWidth)
		s.SetStrokeColor(c.theme.Grid)
		s.BeginPath()
		s.MoveTo(x, 0)
		s.LineTo(x, g.ChartHeight)
		s.Stroke()
	}
}
