// Package chart is the viewport, animation and coordinate engine of a
// time-series line chart with an overview strip.
//
// A Chart draws to three host-provided surfaces: the series layer, the
// grid and label layer, and the overview strip. It never schedules work
// itself. The host calls Tick once per display refresh for as long as Tick
// keeps returning true, and restarts the loop when the chart asks for a
// frame through Config.RequestFrame.
package chart

import (
	"errors"
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/wandb/timechart/internal/coords"
	"github.com/wandb/timechart/internal/labels"
	"github.com/wandb/timechart/internal/minimap"
	"github.com/wandb/timechart/internal/observability"
	"github.com/wandb/timechart/internal/scheduler"
	"github.com/wandb/timechart/internal/selection"
	"github.com/wandb/timechart/internal/spring"
	"github.com/wandb/timechart/internal/viewport"
	"github.com/wandb/timechart/internal/vscale"
)

var (
	ErrTimelineTooShort      = errors.New("chart: timeline needs at least two points")
	ErrTimelineNotIncreasing = errors.New("chart: timeline is not strictly increasing")
	ErrSeriesLength          = errors.New("chart: series length differs from timeline")
)

// textWidthCacheSize bounds the number of measured label texts kept.
const textWidthCacheSize = 512

// fallbackColor is used for series whose color does not parse.
var fallbackColor = RGB(0x88, 0x88, 0x88)

// SeriesData is one input series.
type SeriesData struct {
	ID     string
	Name   string
	Color  string
	Values []float64
}

// Config holds what a Chart is built from.
type Config struct {
	// Timeline holds the strictly increasing timestamps, in milliseconds,
	// shared by every series.
	Timeline []float64

	Series []SeriesData

	// Datasets, Labels and Minimap are the drawing surfaces. A nil
	// surface discards what is drawn to it.
	Datasets Surface
	Labels   Surface
	Minimap  Surface

	// MainSize and MinimapSize are the initial surface sizes. They can be
	// left zero and set later with Resize.
	MainSize    Size
	MinimapSize Size

	// Capture routes overview strip drags. May be nil when the host has
	// no pointer.
	Capture minimap.PointerCapture

	// RequestFrame is called when the chart needs a Tick and the last
	// Tick returned false. May be nil.
	RequestFrame func()

	Params Params
	Logger *observability.CoreLogger
}

type series struct {
	SeriesData
	color   Color
	visible bool

	opacity     spring.Value
	miniOpacity spring.Value
}

// SeriesInfo describes a series for a legend.
type SeriesInfo struct {
	ID      string
	Name    string
	Color   Color
	Visible bool
}

// Geometry is the pixel-space state derived at the start of the most
// recent frame.
type Geometry struct {
	Viewport viewport.Range

	// VirtualWidth is the width of the whole timeline at this zoom.
	VirtualWidth float64

	// OffsetX translates virtual space into screen space.
	OffsetX float64

	// RatioX is virtual pixels per timestamp unit.
	RatioX float64

	// RatioY is pixels per value unit.
	RatioY float64

	// Lower is the value at the bottom of the plot area.
	Lower float64

	// ChartHeight is the height of the plot area.
	ChartHeight float64

	StartTs, EndTs float64
}

type scaleQuery struct {
	startTs, endTs float64
	visibility     int
}

type yLabelQuery struct {
	ratio, lower, height float64
}

// Chart is the engine of one chart.
//
// All methods must be called from the same goroutine.
type Chart struct {
	params Params
	logger *observability.CoreLogger

	timeline []float64
	mapper   coords.Mapper
	series   []*series
	byID     map[string]*series

	// visibility changes whenever a series is toggled.
	visibility int

	datasets     Surface
	labelLayer   Surface
	minimapLayer Surface
	requestFrame func()

	vp       *viewport.Viewport
	slider   *minimap.Slider
	sched    *scheduler.Scheduler
	resolver *vscale.Resolver

	scale   vscale.Scale
	query   scaleQuery
	queried bool

	ratioY spring.Value
	lower  spring.Value

	yAxis   labels.YAxis
	xAxis   labels.XAxis
	yLabels *labels.Manager[float64]
	xLabels *labels.Manager[string]
	yQuery  yLabelQuery
	xWidth  float64

	mini overview

	clock    time.Time
	mainSize Size
	geom     Geometry

	selected selection.State
	drag     selection.Drag

	night bool
	theme Theme

	textWidths  *lru.Cache
	unsubscribe func()
}

// New validates cfg and returns a Chart showing cfg.Params.InitialViewport.
func New(cfg Config) (*Chart, error) {
	if err := validate(cfg.Timeline, cfg.Series); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	params := cfg.Params
	layout := params.Layout

	textWidths, err := lru.New(textWidthCacheSize)
	if err != nil {
		return nil, fmt.Errorf("chart: %v", err)
	}

	c := &Chart{
		params:       params,
		logger:       logger,
		timeline:     cfg.Timeline,
		mapper:       coords.NewMapper(cfg.Timeline),
		byID:         make(map[string]*series, len(cfg.Series)),
		datasets:     orDiscard(cfg.Datasets),
		labelLayer:   orDiscard(cfg.Labels),
		minimapLayer: orDiscard(cfg.Minimap),
		requestFrame: cfg.RequestFrame,
		sched:        scheduler.New(),
		resolver:     vscale.NewResolver(params.ScaleInterval, params.HorizontalLines),
		ratioY:       *spring.New(ratioParams(params.Springs.ZoomRatio, params.MaxDeltaMs)),
		lower:        *spring.New(borderParams(params.Springs.LowerBorder, params.MaxDeltaMs)),
		yAxis: labels.YAxis{
			Lines:     params.HorizontalLines,
			TopOffset: layout.TopOffset,
		},
		xAxis: labels.XAxis{
			Count:   params.XLabelCount,
			Density: params.DensityCoefficient,
		},
		yLabels: labels.NewManager[float64](labels.Params{
			Opacity: opacityParams(params.Springs.YLabelOpacity, params.MaxDeltaMs),
			Stroke:  opacityParams(params.Springs.YLabelStroke, params.MaxDeltaMs),
		}),
		xLabels: labels.NewManager[string](labels.Params{
			Opacity: opacityParams(params.Springs.XLabelOpacity, params.MaxDeltaMs),
			Stroke:  opacityParams(params.Springs.XLabelOpacity, params.MaxDeltaMs),
		}),
		mini:       newOverview(params),
		clock:      time.Unix(0, 0),
		drag:       selection.Drag{Slop: params.Slop},
		night:      params.Night,
		theme:      ThemeFor(params.Night),
		textWidths: textWidths,
	}
	for _, data := range cfg.Series {
		color, err := ParseHex(data.Color)
		if err != nil {
			logger.Warn(fmt.Sprintf("chart: series %q: %v", data.ID, err))
			color = fallbackColor
		}
		s := &series{
			SeriesData:  data,
			color:       color,
			visible:     true,
			opacity:     *spring.New(opacityParams(params.Springs.DatasetOpacity, params.MaxDeltaMs)),
			miniOpacity: *spring.New(opacityParams(params.Springs.DatasetOpacity, params.MinimapMaxDeltaMs)),
		}
		c.series = append(c.series, s)
		c.byID[data.ID] = s
	}

	c.vp = viewport.New(params.InitialViewport, viewport.DefaultMinWidth, logger)
	c.slider = minimap.NewSlider(c.vp, cfg.Capture, minimap.Params{
		MinWidth:    layout.MinimapMinWidth,
		HandleWidth: layout.MinimapHandleWidth,
	}, logger)
	c.unsubscribe = c.vp.Subscribe(func(viewport.Range) { c.invalidate() })
	c.mini.retarget(c.series)

	if cfg.MainSize.valid() || cfg.MinimapSize.valid() {
		c.Resize(cfg.MainSize, cfg.MinimapSize)
	}

	logger.Debug(fmt.Sprintf(
		"chart: created with %d points and %d series, viewport %v",
		len(c.timeline), len(c.series), c.vp.Get(),
	))
	c.invalidate()
	return c, nil
}

func validate(timeline []float64, data []SeriesData) error {
	if len(timeline) < 2 {
		return fmt.Errorf("%w: got %d", ErrTimelineTooShort, len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if !(timeline[i] > timeline[i-1]) {
			return fmt.Errorf("%w: at index %d", ErrTimelineNotIncreasing, i)
		}
	}
	for _, s := range data {
		if len(s.Values) != len(timeline) {
			return fmt.Errorf(
				"%w: series %q has %d values, timeline has %d",
				ErrSeriesLength, s.ID, len(s.Values), len(timeline),
			)
		}
	}
	return nil
}

// Close detaches the chart from its viewport and releases any captured
// pointer.
func (c *Chart) Close() {
	c.slider.Close()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Tick runs one frame that is deltaMs after the previous one and reports
// whether the host should schedule another.
func (c *Chart) Tick(deltaMs float64) bool {
	if !(deltaMs >= 0) || math.IsInf(deltaMs, 0) {
		deltaMs = 0
	}
	return c.sched.Tick(deltaMs, (*frame)(c))
}

// Idle reports whether the chart has settled and needs no further frames.
func (c *Chart) Idle() bool {
	return !c.sched.FramePending()
}

// Viewport returns the chart's viewport, shared with its overview strip.
func (c *Chart) Viewport() *viewport.Viewport {
	return c.vp
}

// OnViewportChange registers fn to be called synchronously whenever the
// visible range changes and returns a function that unregisters it.
func (c *Chart) OnViewportChange(fn func(viewport.Range)) (unsubscribe func()) {
	return c.vp.Subscribe(fn)
}

// Pan moves the window by a fraction of the timeline.
func (c *Chart) Pan(delta float64) {
	c.vp.Pan(delta)
}

// Zoom scales the window width by factor around its centre.
func (c *Chart) Zoom(factor float64) {
	c.vp.Zoom(factor, c.vp.Get().Center())
}

// ToggleSeries shows or hides a series. It returns false if there is no
// series with the given id.
func (c *Chart) ToggleSeries(id string, visible bool) bool {
	s, ok := c.byID[id]
	if !ok {
		c.logger.Debug(fmt.Sprintf("chart: toggle of unknown series %q", id))
		return false
	}
	if s.visible == visible {
		return true
	}

	s.visible = visible
	c.visibility++
	c.resolver.Flush()
	c.mini.retarget(c.series)

	c.logger.Debug(fmt.Sprintf("chart: series %q visible=%v", id, visible))
	c.invalidate()
	return true
}

// Series describes every series in input order.
func (c *Chart) Series() []SeriesInfo {
	infos := make([]SeriesInfo, 0, len(c.series))
	for _, s := range c.series {
		infos = append(infos, SeriesInfo{
			ID:      s.ID,
			Name:    s.Name,
			Color:   s.color,
			Visible: s.visible,
		})
	}
	return infos
}

// Resize sets the sizes of the main surfaces and of the overview strip.
//
// Everything measured in pixels is recomputed, and the next frame redraws
// both layers without animating the size change.
func (c *Chart) Resize(main, mini Size) {
	c.mainSize = main
	c.mini.resize(mini)
	c.slider.Resize(mini.Width)

	c.ratioY = *spring.New(ratioParams(c.params.Springs.ZoomRatio, c.params.MaxDeltaMs))
	c.yQuery = yLabelQuery{}
	c.resolver.Flush()
	c.queried = false

	c.logger.Debug(fmt.Sprintf(
		"chart: resized to %.0fx%.0f, overview %.0fx%.0f",
		main.Width, main.Height, mini.Width, mini.Height,
	))
	c.invalidate()
}

// SetNightMode switches between the day and night palettes.
func (c *Chart) SetNightMode(night bool) {
	if c.night == night {
		return
	}
	c.night = night
	c.theme = ThemeFor(night)
	c.invalidate()
}

// Theme returns the palette in use.
func (c *Chart) Theme() Theme {
	return c.theme
}

// Geometry returns the geometry of the most recent frame.
func (c *Chart) Geometry() Geometry {
	return c.geom
}

// Scale returns the vertical scale the chart is animating toward.
func (c *Chart) Scale() vscale.Scale {
	return c.scale
}

// Slider returns the overview strip's window slider.
func (c *Chart) Slider() *minimap.Slider {
	return c.slider
}

func (c *Chart) invalidate() {
	if c.sched.Invalidate() && c.requestFrame != nil {
		c.requestFrame()
	}
}

func (c *Chart) chartHeight() float64 {
	return math.Max(0, c.mainSize.Height-c.params.Layout.LabelOffset)
}

// textWidth measures text on the label layer, caching the result.
func (c *Chart) textWidth(text string) float64 {
	if w, ok := c.textWidths.Get(text); ok {
		return w.(float64)
	}
	w := c.labelLayer.MeasureText(text)
	c.textWidths.Add(text, w)
	return w
}

// step moves a spring toward target and reports whether it moved.
func step(v *spring.Value, target, deltaMs float64) bool {
	before, wasInitialized := v.Current(), v.Initialized()
	after := v.Step(target, deltaMs)
	return !wasInitialized || after != before
}
