package chart

import (
	"time"

	"github.com/wandb/timechart/internal/labels"
	"github.com/wandb/timechart/internal/minimap"
	"github.com/wandb/timechart/internal/spring"
	"github.com/wandb/timechart/internal/viewport"
	"github.com/wandb/timechart/internal/vscale"
)

const (
	// scaleEpsilon is the convergence threshold of the zoom ratio and the
	// lower border, relative to the visible value range.
	scaleEpsilon = 1e-4

	// opacityEpsilon is the convergence threshold of every opacity.
	opacityEpsilon = 1e-3
)

// Springs holds the convergence rate per millisecond of each animated
// quantity.
type Springs struct {
	ZoomRatio      float64
	LowerBorder    float64
	DatasetOpacity float64
	YLabelOpacity  float64
	YLabelStroke   float64
	XLabelOpacity  float64
}

// Layout holds the pixel measurements of a chart.
type Layout struct {
	// LabelOffset is the space below the plot area reserved for date
	// labels.
	LabelOffset float64

	// TopOffset is the space above the top gridline.
	TopOffset float64

	// XLabelBaseline is the distance from the bottom edge to the date
	// label baseline.
	XLabelBaseline float64

	// YLabelInset is the distance from the left edge to value labels.
	YLabelInset float64

	// YLabelLift is the distance between a gridline and its value label's
	// baseline.
	YLabelLift float64

	LineWidth        float64
	GridLineWidth    float64
	MinimapLineWidth float64

	// MinimapMinWidth is the narrowest overview window.
	MinimapMinWidth float64

	// MinimapHandleWidth is the grab zone around each window edge and the
	// thickness of the side bars.
	MinimapHandleWidth float64

	// TooltipGap is the distance kept between a selected point and its
	// tooltip.
	TooltipGap float64
}

// Params configures a Chart.
type Params struct {
	Springs Springs
	Layout  Layout

	// ScaleInterval is the minimum time between two vertical scale
	// rescans while the viewport keeps changing.
	ScaleInterval time.Duration

	// HorizontalLines is the number of gridline intervals.
	HorizontalLines int

	// XLabelCount is the number of date labels at full zoom-out.
	XLabelCount int

	// DensityCoefficient tunes when date labels split as the view zooms.
	DensityCoefficient float64

	InitialViewport viewport.Range

	// Slop is how far a pressed pointer travels before a selection turns
	// into a pan.
	Slop float64

	Night bool

	// MaxDeltaMs caps the frame delta seen by the main chart's springs,
	// and MinimapMaxDeltaMs the overview strip's.
	MaxDeltaMs        float64
	MinimapMaxDeltaMs float64
}

// DefaultParams returns the settings of a chart drawn on a regular
// pixel canvas.
func DefaultParams() Params {
	return Params{
		Springs: Springs{
			ZoomRatio:      0.008,
			LowerBorder:    0.008,
			DatasetOpacity: 0.008,
			YLabelOpacity:  0.005,
			YLabelStroke:   0.003,
			XLabelOpacity:  0.005,
		},
		Layout: Layout{
			LabelOffset:        60,
			TopOffset:          40,
			XLabelBaseline:     20,
			YLabelInset:        10,
			YLabelLift:         6,
			LineWidth:          4,
			GridLineWidth:      1,
			MinimapLineWidth:   2,
			MinimapMinWidth:    minimap.DefaultMinWidth,
			MinimapHandleWidth: minimap.DefaultHandleWidth,
			TooltipGap:         24,
		},
		ScaleInterval:      250 * time.Millisecond,
		HorizontalLines:    vscale.DefaultHorizontalLines,
		XLabelCount:        labels.DefaultXLabelCount,
		DensityCoefficient: labels.DefaultDensityCoefficient,
		InitialViewport:    viewport.Range{Start: 0.7, End: 1},
		Slop:               6,
		MaxDeltaMs:         100,
		MinimapMaxDeltaMs:  50,
	}
}

func ratioParams(rate, maxDeltaMs float64) spring.Params {
	return spring.Params{
		Rate:       rate,
		Epsilon:    scaleEpsilon,
		Relative:   true,
		MaxDeltaMs: maxDeltaMs,
	}
}

func opacityParams(rate, maxDeltaMs float64) spring.Params {
	return spring.Params{
		Rate:       rate,
		Epsilon:    opacityEpsilon,
		MaxDeltaMs: maxDeltaMs,
	}
}

// borderParams starts with no threshold; the chart sets it every frame
// from the visible value range.
func borderParams(rate, maxDeltaMs float64) spring.Params {
	return spring.Params{
		Rate:       rate,
		MaxDeltaMs: maxDeltaMs,
	}
}
