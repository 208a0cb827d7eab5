package termview_test

import (
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/config"
	"github.com/wandb/timechart/internal/dataset"
	"github.com/wandb/timechart/internal/observability"
	"github.com/wandb/timechart/internal/termview"
	"github.com/wandb/timechart/internal/viewport"
)

const day = 24 * 60 * 60 * 1000.0

func testCharts() []dataset.Chart {
	timeline := make([]float64, 20)
	a := make([]float64, 20)
	b := make([]float64, 20)
	for i := range timeline {
		timeline[i] = float64(i) * day
		a[i] = 10 + 5*math.Sin(float64(i))
		b[i] = float64(i)
	}
	return []dataset.Chart{
		{
			Title:    "Followers",
			Timeline: timeline,
			Series: []chart.SeriesData{
				{ID: "y0", Name: "Joined", Color: "#3cc23f", Values: a},
				{ID: "y1", Name: "Left", Color: "#f34c44", Values: b},
			},
		},
		{
			Title:    "Views",
			Timeline: timeline,
			Series: []chart.SeriesData{
				{ID: "v", Name: "Views", Color: "#3896e3", Values: b},
			},
		},
	}
}

func newModel(t *testing.T, charts []dataset.Chart) *termview.Model {
	t.Helper()
	logger := observability.NewNoOpLogger()
	cfg := config.NewManager(afero.NewMemMapFs(), "", logger,
		config.WithDarkBackground(func() bool { return false }))

	m, err := termview.New(termview.Params{
		Charts: charts,
		Config: cfg,
		Logger: logger,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.TestRunFrames(2000)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// hasQuit runs cmd and any batched commands, looking for a quit.
func hasQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if hasQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestNew_RequiresCharts(t *testing.T) {
	_, err := termview.New(termview.Params{})
	assert.ErrorIs(t, err, termview.ErrNoCharts)
}

func TestNew_RejectsInvalidChart(t *testing.T) {
	charts := testCharts()
	charts[0].Series[0].Values = charts[0].Series[0].Values[:3]

	_, err := termview.New(termview.Params{Charts: charts})
	assert.ErrorIs(t, err, chart.ErrSeriesLength)
}

func TestModel_FrameLoopSettles(t *testing.T) {
	m := newModel(t, testCharts())

	assert.False(t, m.TestFrameScheduled())
	assert.True(t, m.TestEngine().Idle())
	assert.Greater(t, m.TestEngine().Geometry().ChartHeight, 0.0)
}

func TestModel_ViewShowsTitleAndLegend(t *testing.T) {
	m := newModel(t, testCharts())

	view := m.View()
	assert.Contains(t, view, "Followers (1/2)")
	assert.Contains(t, view, "Joined")
	assert.Contains(t, view, "Left")
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m, err := termview.New(termview.Params{Charts: testCharts()})
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, "Loading...", m.View())
}

func TestModel_ToggleSeriesKey(t *testing.T) {
	m := newModel(t, testCharts())

	m.Update(key("1"))
	assert.False(t, m.TestEngine().Series()[0].Visible)
	assert.True(t, m.TestFrameScheduled())

	m.TestRunFrames(2000)
	assert.True(t, m.TestEngine().Idle())

	m.Update(key("1"))
	assert.True(t, m.TestEngine().Series()[0].Visible)

	// No third series.
	m.Update(key("3"))
	assert.True(t, m.TestEngine().Series()[1].Visible)
}

func TestModel_NightModeKey(t *testing.T) {
	m := newModel(t, testCharts())
	require.False(t, m.TestNight())

	m.Update(key("n"))
	assert.True(t, m.TestNight())
	assert.Equal(t, chart.NightTheme, m.TestEngine().Theme())
}

func TestModel_ZoomKeys(t *testing.T) {
	m := newModel(t, testCharts())
	before := m.TestEngine().Viewport().Get()

	m.Update(key("+"))
	after := m.TestEngine().Viewport().Get()
	assert.InDelta(t, before.Width()*0.8, after.Width(), 1e-9)
	assert.InDelta(t, before.Center(), after.Center(), 1e-9)

	m.Update(key("-"))
	assert.InDelta(t, before.Width(), m.TestEngine().Viewport().Get().Width(), 1e-9)
}

func TestModel_PanKeyGlides(t *testing.T) {
	m := newModel(t, testCharts())
	start := m.TestEngine().Viewport().Get()

	m.Update(key("left"))
	assert.True(t, m.TestGlideActive())
	assert.True(t, m.TestFrameScheduled())

	m.TestRunFrames(2000)
	assert.False(t, m.TestGlideActive())

	got := m.TestEngine().Viewport().Get()
	assert.InDelta(t, start.Start-0.1*start.Width(), got.Start, 1e-3)
	assert.InDelta(t, start.Width(), got.Width(), 1e-9)
}

func TestModel_PanKeyStopsAtEnd(t *testing.T) {
	m := newModel(t, testCharts())
	start := m.TestEngine().Viewport().Get()
	require.InDelta(t, 1.0, start.End, 1e-9)

	m.Update(key("right"))
	m.TestRunFrames(2000)

	assert.InDelta(t, 1.0, m.TestEngine().Viewport().Get().End, 1e-9)
}

func TestModel_NextChartKey(t *testing.T) {
	m := newModel(t, testCharts())

	m.Update(key("tab"))
	assert.Equal(t, 1, m.TestCurrentChart())
	require.Len(t, m.TestEngine().Series(), 1)
	assert.Equal(t, "Views", m.TestEngine().Series()[0].Name)

	m.TestRunFrames(2000)
	assert.Contains(t, m.View(), "Views (2/2)")

	m.Update(key("tab"))
	assert.Equal(t, 0, m.TestCurrentChart())
}

func TestModel_NextChartKeyWithOneChart(t *testing.T) {
	m := newModel(t, testCharts()[:1])
	engine := m.TestEngine()

	m.Update(key("tab"))
	assert.Same(t, engine, m.TestEngine())
}

func TestModel_QuitKey(t *testing.T) {
	m := newModel(t, testCharts())

	_, cmd := m.Update(key("q"))
	assert.True(t, hasQuit(cmd))
}

func TestModel_WindowResize(t *testing.T) {
	m := newModel(t, testCharts())
	small := m.TestEngine().Geometry().ChartHeight

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m.TestRunFrames(2000)

	g := m.TestEngine().Geometry()
	assert.Greater(t, g.ChartHeight, small)
	assert.InDelta(t, 240.0, g.VirtualWidth*m.TestEngine().Viewport().Get().Width(), 1e-6)
}

func TestModel_MouseSelectAndClear(t *testing.T) {
	m := newModel(t, testCharts())
	m.View()
	require.Eventually(t, m.TestZonesReady, time.Second, 10*time.Millisecond)

	x, y := m.TestChartOrigin()
	m.Update(tea.MouseMsg{
		X: x + 40, Y: y + 2,
		Action: tea.MouseActionMotion,
		Button: tea.MouseButtonNone,
	})
	m.TestRunFrames(2000)

	_, _, ok := m.TestEngine().Selection(0)
	assert.True(t, ok)

	m.Update(key("esc"))
	_, _, ok = m.TestEngine().Selection(0)
	assert.False(t, ok)
}

func TestModel_MinimapDragMovesViewport(t *testing.T) {
	m := newModel(t, testCharts())
	m.View()
	require.Eventually(t, m.TestZonesReady, time.Second, 10*time.Millisecond)

	x, y := m.TestMinimapOrigin()
	before := m.TestEngine().Viewport().Get()

	// The window covers the right 30% of the strip.
	grab := x + 68
	m.Update(tea.MouseMsg{X: grab, Y: y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.TestCaptureActive())

	// Motion outside the strip still drags.
	m.Update(tea.MouseMsg{X: grab - 20, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: grab - 20, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.False(t, m.TestCaptureActive())
	after := m.TestEngine().Viewport().Get()
	assert.InDelta(t, before.Start-0.25, after.Start, 1e-9)
	assert.InDelta(t, before.Width(), after.Width(), 1e-9)
}

func TestModel_MinimapDragEndsWithoutRelease(t *testing.T) {
	tests := []struct {
		name string
		msg  func(x, y int) tea.MouseMsg
	}{
		{"motion without button", func(x, y int) tea.MouseMsg {
			return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
		}},
		{"new press", func(x, y int) tea.MouseMsg {
			return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, testCharts())
			m.View()
			require.Eventually(t, m.TestZonesReady, time.Second, 10*time.Millisecond)

			x, y := m.TestMinimapOrigin()
			grab := x + 68
			m.Update(tea.MouseMsg{X: grab, Y: y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			m.Update(tea.MouseMsg{X: grab - 20, Y: y + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
			require.True(t, m.TestCaptureActive())
			dragged := m.TestEngine().Viewport().Get()

			m.Update(tt.msg(grab-20, y+1))
			assert.False(t, m.TestCaptureActive())

			// Later motion no longer moves the window.
			m.Update(tea.MouseMsg{X: grab - 40, Y: y + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
			assert.InDelta(t, dragged.Start, m.TestEngine().Viewport().Get().Start, 1e-9)
		})
	}
}

func TestModel_BlurCancelsDrag(t *testing.T) {
	m := newModel(t, testCharts())
	m.View()
	require.Eventually(t, m.TestZonesReady, time.Second, 10*time.Millisecond)

	x, y := m.TestMinimapOrigin()
	m.Update(tea.MouseMsg{X: x + 68, Y: y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.TestCaptureActive())

	m.Update(tea.BlurMsg{})
	assert.False(t, m.TestCaptureActive())
}

func TestModel_DatasetChangedWithoutWatcherIsIgnored(t *testing.T) {
	m := newModel(t, testCharts())
	engine := m.TestEngine()

	_, cmd := m.Update(termview.DatasetChangedMsg{})
	assert.Nil(t, cmd)
	assert.Same(t, engine, m.TestEngine())
}

const reloadDataset = `[{
	"columns": [["x", 0, 86400000, 172800000, 259200000], ["y0", 1, 2, 3, 4]],
	"types": {"x": "x", "y0": "line"},
	"names": {"y0": "Joined"},
	"colors": {"y0": "#3cc23f"}
}]`

const reloadedDataset = `[{
	"columns": [
		["x", 0, 86400000, 172800000, 259200000],
		["y0", 1, 2, 3, 4],
		["y1", 4, 3, null, 1]
	],
	"types": {"x": "x", "y0": "line", "y1": "line"},
	"names": {"y0": "Joined", "y1": "Left"}
}]`

func newReloadModel(t *testing.T, fs afero.Fs) *termview.Model {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "/data.json", []byte(reloadDataset), 0o644))

	logger := observability.NewNoOpLogger()
	charts, err := dataset.Load(fs, "/data.json", logger)
	require.NoError(t, err)

	m, err := termview.New(termview.Params{
		Charts: charts,
		Path:   "/data.json",
		Fs:     fs,
		Logger: logger,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.TestEngine().Viewport().Set(viewport.Range{Start: 0.2, End: 0.6})
	m.TestRunFrames(2000)
	return m
}

func TestModel_ReloadKeepsViewport(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := newReloadModel(t, fs)

	require.NoError(t, afero.WriteFile(fs, "/data.json", []byte(reloadedDataset), 0o644))
	require.NoError(t, m.TestReload())

	series := m.TestEngine().Series()
	require.Len(t, series, 2)
	assert.Equal(t, "Left", series[1].Name)

	r := m.TestEngine().Viewport().Get()
	assert.InDelta(t, 0.2, r.Start, 1e-9)
	assert.InDelta(t, 0.6, r.End, 1e-9)
}

func TestModel_ReloadKeepsChartsOnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := newReloadModel(t, fs)
	engine := m.TestEngine()

	require.NoError(t, afero.WriteFile(fs, "/data.json", []byte(`[{"columns": 3}]`), 0o644))
	assert.ErrorIs(t, m.TestReload(), dataset.ErrMalformed)
	assert.Same(t, engine, m.TestEngine())
	assert.Len(t, m.TestEngine().Series(), 1)
}
