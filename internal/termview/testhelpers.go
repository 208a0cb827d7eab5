// Test<API> provides a controlled interface for testing internal model state.
// These methods are only exposed for tests in the termview_test package.
package termview

import (
	"time"

	"github.com/wandb/timechart/internal/chart"
)

// TestEngine returns the engine of the chart on screen.
func (m *Model) TestEngine() *chart.Chart {
	return m.engine
}

// TestCurrentChart returns the index of the chart on screen.
func (m *Model) TestCurrentChart() int {
	return m.current
}

func (m *Model) TestNight() bool {
	return m.night
}

// TestFrameScheduled reports whether a frame tick is in flight.
func (m *Model) TestFrameScheduled() bool {
	return m.frameInFlight
}

// TestFrame delivers a frame message at now.
func (m *Model) TestFrame(now time.Time) {
	m.Update(frameMsg(now))
}

// TestRunFrames delivers frames one interval apart until nothing more is
// scheduled or limit frames have run. It returns the number of frames run.
func (m *Model) TestRunFrames(limit int) int {
	now := time.Unix(0, 0)
	for i := range limit {
		if !m.frameInFlight {
			return i
		}
		now = now.Add(m.frameInterval)
		m.Update(frameMsg(now))
	}
	return limit
}

// TestGlideActive reports whether a keyboard pan is animating.
func (m *Model) TestGlideActive() bool {
	return m.glide.Active()
}

// TestZonesReady reports whether the screen zones of the last View are
// known.
func (m *Model) TestZonesReady() bool {
	return !m.zones.Get(zoneChart).IsZero() && !m.zones.Get(zoneMinimap).IsZero()
}

// TestChartOrigin returns the screen cell at the top left of the chart.
func (m *Model) TestChartOrigin() (x, y int) {
	z := m.zones.Get(zoneChart)
	return z.StartX, z.StartY
}

// TestMinimapOrigin returns the screen cell at the top left of the
// overview strip.
func (m *Model) TestMinimapOrigin() (x, y int) {
	z := m.zones.Get(zoneMinimap)
	return z.StartX, z.StartY
}

// TestCaptureActive reports whether an overview strip gesture holds the
// pointer.
func (m *Model) TestCaptureActive() bool {
	return m.capture.Active()
}

// TestReload reloads the dataset file as if the watcher had seen it change.
func (m *Model) TestReload() error {
	return m.reload()
}
