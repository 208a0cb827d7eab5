package chart

import (
	"math"

	"github.com/wandb/timechart/internal/coords"
	"github.com/wandb/timechart/internal/spring"
	"github.com/wandb/timechart/internal/vscale"
)

// overview is the state of the strip under the chart that always shows
// the whole timeline.
type overview struct {
	size Size

	// minValue and maxValue span the full values of the visible series.
	minValue, maxValue float64
	hasRange           bool

	ratioY spring.Value
	lower  spring.Value
}

func newOverview(params Params) overview {
	return overview{
		ratioY: *spring.New(ratioParams(params.Springs.ZoomRatio, params.MinimapMaxDeltaMs)),
		lower:  *spring.New(borderParams(params.Springs.LowerBorder, params.MinimapMaxDeltaMs)),
	}
}

// retarget recomputes the value range from the visible series. With no
// visible series the previous range is kept so that fading lines do not
// jump.
func (o *overview) retarget(all []*series) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range all {
		if !s.visible {
			continue
		}
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return
	}
	if hi-lo <= 0 {
		hi = lo + vscale.MinSpan
	}
	o.minValue, o.maxValue = lo, hi
	o.hasRange = true
}

func (o *overview) resize(size Size) {
	o.size = size
}

func (o *overview) targetRatio() float64 {
	if !o.hasRange || !o.size.valid() {
		return 0
	}
	return o.size.Height / (o.maxValue - o.minValue)
}

// step advances the overview's springs. Series opacity springs that the
// overview keeps separately from the main chart are stepped here too.
func (o *overview) step(all []*series, deltaMs float64) (changed, animating bool) {
	for _, s := range all {
		target := 0.0
		if s.visible {
			target = 1
		}
		if step(&s.miniOpacity, target, deltaMs) {
			changed = true
		}
		animating = animating || s.miniOpacity.Converging()
	}

	o.lower.SetEpsilon(scaleEpsilon * (o.maxValue - o.minValue))
	if step(&o.ratioY, o.targetRatio(), deltaMs) {
		changed = true
	}
	if step(&o.lower, o.minValue, deltaMs) {
		changed = true
	}
	animating = animating || o.ratioY.Converging() || o.lower.Converging()
	return changed, animating
}

// drawMinimap strokes every series over the full timeline and shades the
// part of the strip outside the slider window.
func (c *Chart) drawMinimap() {
	o := &c.mini
	if !o.size.valid() {
		return
	}
	s := c.minimapLayer
	w, h := o.size.Width, o.size.Height

	s.ClearRect(0, 0, w, h)
	s.Save()
	defer s.Restore()
	s.SetTransform(1, 1, 0, 0)
	s.SetLineWidth(c.params.Layout.MinimapLineWidth)

	ratio, lower := o.ratioY.Current(), o.lower.Current()
	for _, sr := range c.series {
		opacity := sr.miniOpacity.Current()
		if !drawn(opacity) {
			continue
		}
		s.SetStrokeColor(sr.color.WithAlpha(opacity))
		s.BeginPath()
		plot(s, sr.Values, 0, len(sr.Values), func(i int, v float64) (float64, float64) {
			return c.mapper.XForIndex(i, w), coords.YForValue(v, lower, ratio, h)
		})
		s.Stroke()
	}

	left, right := c.slider.Bounds()
	handle := c.params.Layout.MinimapHandleWidth

	s.SetFillColor(c.theme.MinimapShade)
	if left > 0 {
		s.FillRect(0, 0, left, h)
	}
	if right < w {
		s.FillRect(right, 0, w-right, h)
	}

	s.SetFillColor(c.theme.MinimapHandle)
	s.FillRect(left, 0, handle, h)
	s.FillRect(right-handle, 0, handle, h)
	s.FillRect(left+handle, 0, right-left-2*handle, 1)
	s.FillRect(left+handle, h-1, right-left-2*handle, 1)
}
