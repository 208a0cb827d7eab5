package chart_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/charttest"
	"github.com/wandb/timechart/internal/minimap"
	"github.com/wandb/timechart/internal/observabilitytest"
	"github.com/wandb/timechart/internal/viewport"
	"github.com/wandb/timechart/internal/vscale"
)

const (
	frameMs  = 16
	maxTicks = 5000

	jan1 = 1546300800000
	day  = 24 * 60 * 60 * 1000
)

type surfaces struct {
	datasets, labels, minimap *charttest.RecordingSurface
}

func (s surfaces) reset() {
	s.datasets.Reset()
	s.labels.Reset()
	s.minimap.Reset()
}

type testChart struct {
	*chart.Chart
	surfaces
	requests int
}

func newChart(t *testing.T, modify func(*chart.Config)) *testChart {
	t.Helper()
	tc := &testChart{surfaces: surfaces{
		datasets: charttest.NewRecordingSurface(),
		labels:   charttest.NewRecordingSurface(),
		minimap:  charttest.NewRecordingSurface(),
	}}

	params := chart.DefaultParams()
	params.InitialViewport = viewport.Range{Start: 0, End: 1}
	cfg := chart.Config{
		Timeline: []float64{0, 1, 2, 3, 4},
		Series: []chart.SeriesData{
			{ID: "a", Name: "Joined", Color: "#3cc23f", Values: []float64{10, 20, 15, 30, 5}},
		},
		Datasets:     tc.datasets,
		Labels:       tc.labels,
		Minimap:      tc.minimap,
		MainSize:     chart.Size{Width: 400, Height: 360},
		MinimapSize:  chart.Size{Width: 400, Height: 60},
		RequestFrame: func() { tc.requests++ },
		Params:       params,
		Logger:       observabilitytest.NewTestLogger(t),
	}
	if modify != nil {
		modify(&cfg)
	}

	c, err := chart.New(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	tc.Chart = c
	return tc
}

// runUntilIdle ticks until the chart stops asking for frames and returns
// the number of frames run.
func runUntilIdle(t *testing.T, c *chart.Chart) int {
	t.Helper()
	for i := 1; i <= maxTicks; i++ {
		if !c.Tick(frameMs) {
			return i
		}
	}
	require.FailNow(t, "chart never became idle")
	return 0
}

func TestNew_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name     string
		timeline []float64
		values   []float64
		err      error
	}{
		{"empty timeline", nil, nil, chart.ErrTimelineTooShort},
		{"single point", []float64{1}, []float64{1}, chart.ErrTimelineTooShort},
		{"repeated timestamp", []float64{1, 2, 2}, []float64{1, 2, 3}, chart.ErrTimelineNotIncreasing},
		{"decreasing", []float64{3, 2, 1}, []float64{1, 2, 3}, chart.ErrTimelineNotIncreasing},
		{"short series", []float64{1, 2, 3}, []float64{1, 2}, chart.ErrSeriesLength},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chart.New(chart.Config{
				Timeline: tc.timeline,
				Series:   []chart.SeriesData{{ID: "a", Values: tc.values}},
				Params:   chart.DefaultParams(),
			})
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestNew_RequestsFirstFrame(t *testing.T) {
	c := newChart(t, nil)

	assert.Equal(t, 1, c.requests)
	assert.False(t, c.Idle())
}

func TestTick_FirstFrameUsesVerticalBorders(t *testing.T) {
	c := newChart(t, nil)

	c.Tick(frameMs)

	scale := c.Scale()
	assert.InDelta(t, 30.3, scale.Max, 1e-2)
	assert.InDelta(t, 4.95, scale.Min, 1e-2)
	assert.LessOrEqual(t, scale.Lower, scale.Min)

	g := c.Geometry()
	assert.Equal(t, 300.0, g.ChartHeight)
	assert.Equal(t, 400.0, g.VirtualWidth)
	assert.Equal(t, 0.0, g.OffsetX)
	assert.Equal(t, vscale.ZoomRatio(300, scale.Max, scale.Lower), g.RatioY)
	assert.Equal(t, scale.Lower, g.Lower)
}

func TestTick_BecomesIdleAndStaysIdle(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)
	require.True(t, c.Idle())
	c.reset()

	assert.False(t, c.Tick(frameMs))
	assert.Zero(t, c.datasets.Count("ClearRect"))
	assert.Zero(t, c.labels.Count("ClearRect"))
}

func TestTick_DrawsEveryPointInView(t *testing.T) {
	ctrl := gomock.NewController(t)
	datasets := charttest.NewMockSurface(ctrl)
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Datasets = datasets
	})

	gomock.InOrder(
		datasets.EXPECT().ClearRect(0.0, 0.0, 400.0, 360.0),
		datasets.EXPECT().Save(),
		datasets.EXPECT().SetTransform(1.0, 1.0, 0.0, 0.0),
		datasets.EXPECT().SetLineWidth(4.0),
		datasets.EXPECT().SetStrokeColor(gomock.Any()),
		datasets.EXPECT().BeginPath(),
		datasets.EXPECT().MoveTo(0.0, gomock.Any()),
		datasets.EXPECT().LineTo(gomock.Any(), gomock.Any()).Times(4),
		datasets.EXPECT().Stroke(),
		datasets.EXPECT().Restore(),
	)

	c.Tick(frameMs)
}

func TestTick_MissingValuesBreakTheLine(t *testing.T) {
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Series[0].Values = []float64{10, math.NaN(), 15, 30, math.NaN()}
	})

	runUntilIdle(t, c.Chart)
	require.True(t, c.Idle())

	for _, s := range []*charttest.RecordingSurface{c.datasets, c.minimap} {
		var path []string
		for _, op := range s.Ops() {
			if op.Name != "MoveTo" && op.Name != "LineTo" {
				continue
			}
			path = append(path, op.Name)
			for _, arg := range op.Args {
				assert.False(t, math.IsNaN(arg))
			}
		}
		require.GreaterOrEqual(t, len(path), 3)
		assert.Equal(t, []string{"MoveTo", "MoveTo", "LineTo"}, path[:3])
	}
}

func TestTick_DrawsDateAndValueLabels(t *testing.T) {
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Timeline = make([]float64, 10)
		for i := range cfg.Timeline {
			cfg.Timeline[i] = jan1 + float64(i)*day
		}
		cfg.Series[0].Values = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	})

	runUntilIdle(t, c.Chart)
	c.reset()
	c.SetNightMode(true)
	c.Tick(frameMs)

	texts := c.labels.Texts()
	assert.Contains(t, texts, "Jan 10")
	assert.Contains(t, texts, "Jan 01")
	assert.NotEmpty(t, texts)
}

func TestToggleSeries_HidingLastSeriesKeepsScale(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)
	before := c.Scale()

	require.True(t, c.ToggleSeries("a", false))
	runUntilIdle(t, c.Chart)

	assert.Equal(t, before, c.Scale())
	assert.False(t, c.Series()[0].Visible)

	c.reset()
	c.SetNightMode(true)
	c.Tick(frameMs)
	assert.Zero(t, c.datasets.Count("Stroke"), "hidden series is not drawn")
}

func TestToggleSeries_RescalesToRemainingSeries(t *testing.T) {
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Series = append(cfg.Series, chart.SeriesData{
			ID: "b", Name: "Left", Color: "#ed685f", Values: []float64{100, 200, 150, 300, 50},
		})
	})
	runUntilIdle(t, c.Chart)
	assert.InDelta(t, 303, c.Scale().Max, 1)

	require.True(t, c.ToggleSeries("b", false))
	runUntilIdle(t, c.Chart)

	assert.InDelta(t, 30.3, c.Scale().Max, 1e-2)
	assert.Equal(t, vscale.ZoomRatio(300, c.Scale().Max, c.Scale().Lower), c.Geometry().RatioY)
}

func TestToggleSeries_UnknownID(t *testing.T) {
	c := newChart(t, nil)

	assert.False(t, c.ToggleSeries("nope", false))
}

func TestSetNightMode_RedrawsOnceThenIdles(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)
	requests := c.requests
	c.reset()

	c.SetNightMode(true)

	assert.Equal(t, requests+1, c.requests)
	assert.Equal(t, chart.NightTheme, c.Theme())
	assert.False(t, c.Tick(frameMs))
	assert.Equal(t, 1, c.datasets.Count("ClearRect"))
	assert.Equal(t, 1, c.labels.Count("ClearRect"))

	c.reset()
	assert.False(t, c.Tick(frameMs))
	assert.Zero(t, c.datasets.Count("ClearRect"))
	assert.Zero(t, c.labels.Count("ClearRect"))
}

func TestPan_ClampsAtTimelineStart(t *testing.T) {
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Params.InitialViewport = viewport.Range{Start: 0.5, End: 1}
	})
	runUntilIdle(t, c.Chart)

	c.PointerDown(100)
	c.PointerMove(2000)
	c.PointerUp(2000)

	r := c.Viewport().Get()
	assert.Equal(t, 0.0, r.Start)
	assert.InDelta(t, 0.5, r.End, 1e-9)
	assert.Greater(t, r.End, r.Start)
}

func TestZoom_InvalidatesAndRescales(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)
	requests := c.requests

	c.Zoom(0.5)
	runUntilIdle(t, c.Chart)

	assert.Equal(t, requests+1, c.requests)
	r := c.Viewport().Get()
	assert.InDelta(t, 0.25, r.Start, 1e-9)
	assert.InDelta(t, 0.75, r.End, 1e-9)
	assert.InDelta(t, 800, c.Geometry().VirtualWidth, 1e-9)
	assert.InDelta(t, -200, c.Geometry().OffsetX, 1e-9)
}

func TestPointer_SelectsNearestPoint(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)

	c.PointerDown(210)
	tip, place, ok := c.Selection(80)

	require.True(t, ok)
	assert.Equal(t, 2, tip.Index)
	require.Len(t, tip.Points, 1)
	assert.Equal(t, 15.0, tip.Points[0].Value)
	assert.Equal(t, "Joined", tip.Points[0].Name)
	assert.True(t, place.Visible)
	assert.InDelta(t, 224, place.Left, 1e-9)
}

func TestPointer_SmallMovementKeepsSelecting(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)

	c.PointerDown(248)
	c.PointerMove(252)
	c.PointerUp(252)

	tip, _, ok := c.Selection(80)
	require.True(t, ok, "a move within the slop distance must not pan")
	assert.Equal(t, 3, tip.Index)
}

func TestPointer_PanClearsSelection(t *testing.T) {
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Params.InitialViewport = viewport.Range{Start: 0.5, End: 1}
	})
	runUntilIdle(t, c.Chart)

	c.PointerDown(200)
	c.PointerMove(280)

	_, _, ok := c.Selection(80)
	assert.False(t, ok)
	assert.InDelta(t, 0.4, c.Viewport().Get().Start, 1e-9)
}

func TestPointer_HoverSelects(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)

	c.PointerMove(390)

	tip, place, ok := c.Selection(80)
	require.True(t, ok)
	assert.Equal(t, 4, tip.Index)
	assert.InDelta(t, 400-24-80, place.Left, 1e-9)
}

func TestTooltipData_NoVisibleSeries(t *testing.T) {
	c := newChart(t, nil)
	c.ToggleSeries("a", false)

	_, ok := c.TooltipData(100)
	assert.False(t, ok)
}

// listenerCapture keeps the listener of the last capture.
type listenerCapture struct {
	listener minimap.Listener
	released bool
}

func (c *listenerCapture) Capture(l minimap.Listener) func() {
	c.listener = l
	c.released = false
	return func() { c.released = true }
}

func TestMinimap_DragMovesViewport(t *testing.T) {
	capture := &listenerCapture{}
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Params.InitialViewport = viewport.Range{Start: 0.5, End: 1}
		cfg.Capture = capture
	})
	runUntilIdle(t, c.Chart)

	require.True(t, c.MinimapPointerDown(300))
	capture.listener.Move(250)
	capture.listener.End(250)

	r := c.Viewport().Get()
	assert.InDelta(t, 0.375, r.Start, 1e-9)
	assert.InDelta(t, 0.875, r.End, 1e-9)
	assert.True(t, capture.released)
	assert.False(t, c.Idle(), "a viewport change requests a frame")
}

func TestMinimap_PressOutsideWindow(t *testing.T) {
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Params.InitialViewport = viewport.Range{Start: 0.5, End: 1}
	})
	runUntilIdle(t, c.Chart)

	assert.False(t, c.MinimapPointerDown(50))
}

func TestMinimap_ShadesOutsideWindow(t *testing.T) {
	c := newChart(t, func(cfg *chart.Config) {
		cfg.Params.InitialViewport = viewport.Range{Start: 0.5, End: 1}
	})

	c.Tick(frameMs)

	var rects [][]float64
	for _, op := range c.minimap.Ops() {
		if op.Name == "FillRect" {
			rects = append(rects, op.Args)
		}
	}
	require.NotEmpty(t, rects)
	assert.Equal(t, []float64{0, 0, 200, 60}, rects[0])
}

func TestResize_SnapsRatioToNewHeight(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)

	c.Resize(
		chart.Size{Width: 800, Height: 560},
		chart.Size{Width: 800, Height: 60},
	)
	c.Tick(frameMs)

	scale := c.Scale()
	g := c.Geometry()
	assert.Equal(t, 500.0, g.ChartHeight)
	assert.Equal(t, 800.0, g.VirtualWidth)
	assert.Equal(t, vscale.ZoomRatio(500, scale.Max, scale.Lower), g.RatioY)
}

func TestResize_RescansThrottledScale(t *testing.T) {
	c := newChart(t, nil)
	runUntilIdle(t, c.Chart)

	c.Viewport().Set(viewport.Range{Start: 0.25, End: 0.75})
	c.Tick(0)
	c.Viewport().Set(viewport.Range{Start: 0, End: 0.5})
	c.Tick(0)
	require.InDelta(t, 30.3, c.Scale().Max, 1e-9, "rescan is throttled")

	c.Resize(
		chart.Size{Width: 400, Height: 360},
		chart.Size{Width: 400, Height: 60},
	)
	c.Tick(0)

	assert.InDelta(t, 20.2, c.Scale().Max, 1e-9)
	assert.InDelta(t, 9.9, c.Scale().Min, 1e-9)
}

func TestNilSurfacesDiscard(t *testing.T) {
	c, err := chart.New(chart.Config{
		Timeline: []float64{0, 1, 2},
		Series:   []chart.SeriesData{{ID: "a", Color: "not a color", Values: []float64{1, 2, 3}}},
		MainSize: chart.Size{Width: 100, Height: 100},
		Params:   chart.DefaultParams(),
	})
	require.NoError(t, err)
	defer c.Close()

	for range maxTicks {
		if !c.Tick(frameMs) {
			break
		}
	}
	assert.True(t, c.Idle())
}
