// Package termview shows charts in the terminal with bubbletea.
//
// The chart engine draws to braille Surfaces. The model owns the frame loop:
// it asks bubbletea for a tick whenever the engine requests a frame and
// keeps ticking for as long as the engine reports it is animating.
package termview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/afero"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/config"
	"github.com/wandb/timechart/internal/dataset"
	"github.com/wandb/timechart/internal/labels"
	"github.com/wandb/timechart/internal/observability"
	"github.com/wandb/timechart/internal/viewport"
)

var ErrNoCharts = errors.New("termview: dataset has no charts")

// frameMsg is a display refresh.
type frameMsg time.Time

// Params configures a Model.
type Params struct {
	Charts []dataset.Chart

	// Path is the dataset file. With Watch set, the model reloads it
	// whenever it changes.
	Path  string
	Fs    afero.Fs
	Watch bool

	Config *config.Manager
	Logger *observability.CoreLogger
}

// Model is the bubbletea model of the viewer.
type Model struct {
	charts  []dataset.Chart
	current int
	path    string
	fs      afero.Fs

	engine        *chart.Chart
	chartParams   chart.Params
	frameInterval time.Duration

	datasets, labels, minimap *Surface

	capture *pointerCapture
	zones   *zone.Manager
	glide   *glide
	watcher *FileWatcher

	bindings []BindingCategory
	keyMap   map[string]keyHandler
	help     help.Model

	night  bool
	styles styles

	width, height int

	// needFrame is set when the engine asks for a frame; frameInFlight
	// while a tick is scheduled.
	needFrame     bool
	frameInFlight bool
	lastFrame     time.Time

	closed bool

	logger *observability.CoreLogger
}

var _ tea.Model = (*Model)(nil)

func New(params Params) (*Model, error) {
	if len(params.Charts) == 0 {
		return nil, ErrNoCharts
	}
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	cfg := params.Config
	if cfg == nil {
		cfg = config.NewManager(afero.NewMemMapFs(), "", logger,
			config.WithDarkBackground(func() bool { return false }))
	}
	fs := params.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	chartParams := terminalParams(cfg.ChartParams())
	frameInterval := cfg.FrameInterval()
	theme := chart.ThemeFor(chartParams.Night)
	bindings := KeyBindings()

	m := &Model{
		charts:        params.Charts,
		path:          params.Path,
		fs:            fs,
		chartParams:   chartParams,
		frameInterval: frameInterval,
		datasets:      NewSurface(0, 0, theme.Background),
		labels:        NewSurface(0, 0, theme.Background),
		minimap:       NewSurface(0, 0, theme.Background),
		capture:       &pointerCapture{},
		zones:         zone.New(),
		glide:         newGlide(frameInterval),
		bindings:      bindings,
		keyMap:        buildKeyMap(bindings),
		help:          help.New(),
		night:         chartParams.Night,
		styles:        stylesFor(theme),
		logger:        logger,
	}

	if err := m.buildEngine(nil); err != nil {
		return nil, err
	}

	if params.Watch && params.Path != "" {
		m.watcher = NewFileWatcher(logger)
		if err := m.watcher.Start(params.Path, 0); err != nil {
			m.logger.CaptureError(err)
			m.watcher = nil
		}
	}
	return m, nil
}

// buildEngine replaces the engine with one for the current chart, keeping
// the visible range if one is given. The old engine stays on error.
func (m *Model) buildEngine(keep *viewport.Range) error {
	c := m.charts[m.current]
	params := m.chartParams
	params.Night = m.night
	if keep != nil {
		params.InitialViewport = *keep
	}

	m.capture.Cancel()
	m.glide.Stop()

	engine, err := chart.New(chart.Config{
		Timeline:     c.Timeline,
		Series:       c.Series,
		Datasets:     m.datasets,
		Labels:       m.labels,
		Minimap:      m.minimap,
		MainSize:     m.datasets.Size(),
		MinimapSize:  m.minimap.Size(),
		Capture:      m.capture,
		RequestFrame: m.requestFrame,
		Params:       params,
		Logger:       m.logger.With("chart", c.Title),
	})
	if err != nil {
		return fmt.Errorf("termview: %s: %w", c.Title, err)
	}

	if m.engine != nil {
		m.engine.Close()
	}
	m.engine = engine
	m.needFrame = true
	return nil
}

func (m *Model) requestFrame() {
	m.needFrame = true
}

// Init starts listening for dataset changes.
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.WaitForMsg
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		_, cmd = m.handleKeyMsg(msg)
	case tea.MouseMsg:
		_, cmd = m.handleMouseMsg(msg)
	case tea.BlurMsg:
		m.capture.Cancel()
	case frameMsg:
		m.handleFrame(time.Time(msg))
	case DatasetChangedMsg:
		cmd = m.handleDatasetChanged()
	}

	return m, tea.Batch(cmd, m.scheduleFrame())
}

// scheduleFrame asks bubbletea for a tick if a frame is needed and none is
// scheduled.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.frameInFlight || !(m.needFrame || m.glide.Active()) {
		return nil
	}
	m.frameInFlight = true
	m.needFrame = false
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrame(now time.Time) {
	m.frameInFlight = false

	delta := m.frameInterval
	if !m.lastFrame.IsZero() {
		delta = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	if m.glide.Active() {
		vp := m.engine.Viewport()
		r := vp.Get()
		start := m.glide.Step()
		vp.Set(viewport.Range{Start: start, End: start + r.Width()})
	}

	if m.engine.Tick(float64(delta) / float64(time.Millisecond)) {
		m.needFrame = true
	}
	if !m.needFrame && !m.glide.Active() {
		// The next burst of frames starts from a nominal delta.
		m.lastFrame = time.Time{}
	}
}

func (m *Model) handleDatasetChanged() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if err := m.reload(); err != nil {
		m.logger.CaptureWarn("termview: keeping previous dataset", "error", err)
	}
	return m.watcher.WaitForMsg
}

// reload reads the dataset file again and rebuilds the chart on screen,
// keeping its visible range. On error the previous charts stay.
func (m *Model) reload() error {
	charts, err := dataset.Load(m.fs, m.path, m.logger)
	if err != nil {
		return err
	}
	if len(charts) == 0 {
		return ErrNoCharts
	}

	old, oldCurrent := m.charts, m.current
	keep := m.engine.Viewport().Get()
	m.charts = charts
	m.current = min(m.current, len(charts)-1)
	if err := m.buildEngine(&keep); err != nil {
		m.charts, m.current = old, oldCurrent
		return err
	}

	m.logger.Debug(fmt.Sprintf("termview: reloaded %d charts", len(charts)))
	return nil
}

// resize lays the screen out for a terminal of the given size.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	cols := max(width, minCols)
	m.datasets.Resize(cols, m.chartRows())
	m.labels.Resize(cols, m.chartRows())
	m.minimap.Resize(cols, minimapRows)

	m.capture.Cancel()
	m.engine.Resize(m.datasets.Size(), m.minimap.Size())
}

func (m *Model) chartRows() int {
	rows := m.height - titleRows - minimapRows - legendRows - tooltipRows -
		lipgloss.Height(m.helpView())
	return max(rows, minChartRows)
}

func (m *Model) helpView() string {
	return m.help.View(helpKeys(m.bindings))
}

func (m *Model) setNight(night bool) {
	m.night = night
	theme := chart.ThemeFor(night)
	m.styles = stylesFor(theme)
	for _, s := range []*Surface{m.datasets, m.labels, m.minimap} {
		s.SetBackground(theme.Background)
	}
	m.engine.SetNightMode(night)
}

// View renders the title, both chart layers, the overview strip, the
// legend, the tooltip line and the help line.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	c := m.charts[m.current]
	title := c.Title
	if len(m.charts) > 1 {
		title = fmt.Sprintf("%s (%d/%d)", title, m.current+1, len(m.charts))
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Width(m.width).Render(title),
		m.zones.Mark(zoneChart, Compose(m.datasets, m.labels)),
		m.zones.Mark(zoneMinimap, m.minimap.View()),
		m.legendView(),
		m.tooltipView(),
		m.styles.help.Render(m.helpView()),
	)
	return m.zones.Scan(view)
}

func legendZone(i int) string {
	return fmt.Sprintf("legend-%d", i)
}

func (m *Model) legendView() string {
	var parts []string
	for i, s := range m.engine.Series() {
		var item string
		if s.Visible {
			item = seriesStyle(m.styles.legend, s.Color).Render("● " + s.Name)
		} else {
			item = m.styles.hidden.Render("○ " + s.Name)
		}
		parts = append(parts, m.zones.Mark(legendZone(i), item))
	}
	return strings.Join(parts, m.styles.legend.Render("  "))
}

// tooltipView renders the selected point's date and values next to it.
func (m *Model) tooltipView() string {
	text, ok := m.tooltipText()
	if !ok {
		return ""
	}
	width := runewidth.StringWidth(text)
	_, place, ok := m.engine.Selection(float64(width * dotsPerCol))
	if !ok || !place.Visible {
		return ""
	}
	indent := int(place.Left) / dotsPerCol
	return strings.Repeat(" ", indent) + m.renderTooltip()
}

// tooltipText is the unstyled tooltip content.
func (m *Model) tooltipText() (string, bool) {
	tip, _, ok := m.engine.Selection(0)
	if !ok {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString(tip.Date)
	for _, p := range tip.Points {
		fmt.Fprintf(&sb, "  %s: %s", p.Name, labels.FormatValue(p.Value))
	}
	return sb.String(), true
}

func (m *Model) renderTooltip() string {
	tip, _, ok := m.engine.Selection(0)
	if !ok {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.styles.tooltip.Bold(true).Render(tip.Date))
	for _, p := range tip.Points {
		color, err := chart.ParseHex(p.Color)
		if err != nil {
			color = m.engine.Theme().Text
		}
		sb.WriteString(m.styles.tooltip.Render("  "))
		sb.WriteString(seriesStyle(m.styles.tooltip, color).Render(
			fmt.Sprintf("%s: %s", p.Name, labels.FormatValue(p.Value)),
		))
	}
	return sb.String()
}
