package termview

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// panFraction is how much of the visible window one key press pans.
	panFraction = 0.1

	zoomInFactor  = 0.8
	zoomOutFactor = 1.25
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if handler, ok := m.keyMap[msg.String()]; ok {
		return handler(m, msg)
	}
	return m, nil
}

func (m *Model) handlePanLeft(tea.KeyMsg) (*Model, tea.Cmd) {
	m.panBy(-panFraction)
	return m, nil
}

func (m *Model) handlePanRight(tea.KeyMsg) (*Model, tea.Cmd) {
	m.panBy(panFraction)
	return m, nil
}

// panBy glides the window by a fraction of its own width.
func (m *Model) panBy(fraction float64) {
	r := m.engine.Viewport().Get()
	m.engine.ClearSelection()
	m.glide.By(r.Start, fraction*r.Width(), 1-r.Width())
}

func (m *Model) handleZoomIn(tea.KeyMsg) (*Model, tea.Cmd) {
	m.glide.Stop()
	m.engine.Zoom(zoomInFactor)
	return m, nil
}

func (m *Model) handleZoomOut(tea.KeyMsg) (*Model, tea.Cmd) {
	m.glide.Stop()
	m.engine.Zoom(zoomOutFactor)
	return m, nil
}

func (m *Model) handleNextChart(tea.KeyMsg) (*Model, tea.Cmd) {
	if len(m.charts) < 2 {
		return m, nil
	}
	prev := m.current
	m.current = (m.current + 1) % len(m.charts)
	if err := m.buildEngine(nil); err != nil {
		m.current = prev
		m.logger.CaptureError(err)
	}
	return m, nil
}

// handleToggleSeries toggles the series numbered by the key, counting
// from 1.
func (m *Model) handleToggleSeries(msg tea.KeyMsg) (*Model, tea.Cmd) {
	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return m, nil
	}
	m.toggleSeries(int(key[0] - '1'))
	return m, nil
}

func (m *Model) toggleSeries(i int) {
	series := m.engine.Series()
	if i < 0 || i >= len(series) {
		return
	}
	m.engine.ToggleSeries(series[i].ID, !series[i].Visible)
}

func (m *Model) handleToggleNight(tea.KeyMsg) (*Model, tea.Cmd) {
	m.setNight(!m.night)
	return m, nil
}

func (m *Model) handleClearSelection(tea.KeyMsg) (*Model, tea.Cmd) {
	m.engine.ClearSelection()
	return m, nil
}

func (m *Model) handleToggleHelp(tea.KeyMsg) (*Model, tea.Cmd) {
	m.help.ShowAll = !m.help.ShowAll
	m.resize(m.width, m.height)
	return m, nil
}

func (m *Model) handleQuit(tea.KeyMsg) (*Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// Close stops the file watcher and releases the chart. It may be called
// more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.watcher != nil {
		m.watcher.Finish()
		m.watcher = nil
	}
	m.engine.Close()
	m.zones.Close()
}

// handleMouseMsg routes mouse events.
//
// A gesture started on the overview strip keeps the pointer until the
// button is released, wherever the pointer goes.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (*Model, tea.Cmd) {
	if m.capture.Active() {
		if x, ok := m.zoneX(zoneMinimap, msg); ok {
			switch {
			case msg.Action == tea.MouseActionMotion && msg.Button != tea.MouseButtonNone:
				m.capture.Move(x)
			default:
				// A press, or motion with no button held, means the
				// terminal never reported the release.
				m.capture.End(x)
			}
		}
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.glide.Stop()
		m.engine.Zoom(zoomInFactor)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.glide.Stop()
		m.engine.Zoom(zoomOutFactor)
		return m, nil
	}

	switch {
	case m.zones.Get(zoneMinimap).InBounds(msg):
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			x, _ := m.zoneX(zoneMinimap, msg)
			m.glide.Stop()
			m.engine.MinimapPointerDown(x)
		}
	case m.zones.Get(zoneChart).InBounds(msg):
		m.handleChartMouse(msg)
	default:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.handleLegendClick(msg)
		}
	}
	return m, nil
}

func (m *Model) handleChartMouse(msg tea.MouseMsg) {
	x, _ := m.zoneX(zoneChart, msg)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.glide.Stop()
			m.engine.PointerDown(x)
		}
	case tea.MouseActionMotion:
		m.engine.PointerMove(x)
	case tea.MouseActionRelease:
		m.engine.PointerUp(x)
	}
}

func (m *Model) handleLegendClick(msg tea.MouseMsg) {
	for i := range m.engine.Series() {
		if m.zones.Get(legendZone(i)).InBounds(msg) {
			m.toggleSeries(i)
			return
		}
	}
}

// zoneX converts the mouse column to a dot x coordinate inside a zone,
// pointing at the middle of the cell. It may fall outside the zone.
func (m *Model) zoneX(id string, msg tea.MouseMsg) (float64, bool) {
	z := m.zones.Get(id)
	if z == nil || z.IsZero() {
		return 0, false
	}
	col := msg.X - z.StartX
	return float64(col*dotsPerCol + dotsPerCol/2), true
}
