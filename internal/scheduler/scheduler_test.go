package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/timechart/internal/scheduler"
	"github.com/wandb/timechart/internal/spring"
)

// springFrame animates a single value that the dataset layer depends on
// and a second one for the label layer.
type springFrame struct {
	data, label       *spring.Value
	dataTo, labelTo   float64
	calls             []string
	drawnData, drawnL float64
}

func newSpringFrame() *springFrame {
	params := spring.Params{Rate: 0.008, Epsilon: 1e-3, MaxDeltaMs: 100}
	f := &springFrame{data: spring.New(params), label: spring.New(params)}
	f.data.Snap(0)
	f.label.Snap(0)
	return f
}

func (f *springFrame) Step(deltaMs float64) scheduler.Activity {
	f.calls = append(f.calls, "step")
	prevData, prevLabel := f.data.Current(), f.label.Current()
	f.data.Step(f.dataTo, deltaMs)
	f.label.Step(f.labelTo, deltaMs)
	return scheduler.Activity{
		DatasetsChanged: f.data.Current() != prevData,
		LabelsChanged:   f.label.Current() != prevLabel,
		Animating:       f.data.Converging() || f.label.Converging(),
	}
}

func (f *springFrame) Layout() { f.calls = append(f.calls, "layout") }

func (f *springFrame) DrawDatasets() {
	f.calls = append(f.calls, "datasets")
	f.drawnData = f.data.Current()
}

func (f *springFrame) DrawLabels() {
	f.calls = append(f.calls, "labels")
	f.drawnL = f.label.Current()
}

func (f *springFrame) reset() { f.calls = nil }

func runUntilIdle(t *testing.T, s *scheduler.Scheduler, f scheduler.Frame) int {
	t.Helper()
	for i := 1; i <= 10_000; i++ {
		if !s.Tick(16, f) {
			return i
		}
	}
	t.Fatal("scheduler never went idle")
	return 0
}

func TestTick_FirstFrameDrawsEverything(t *testing.T) {
	s := scheduler.New()
	f := newSpringFrame()

	more := s.Tick(16, f)

	assert.False(t, more)
	assert.Equal(t, []string{"step", "layout", "datasets", "labels"}, f.calls)
}

func TestTick_IdleWhenConverged(t *testing.T) {
	s := scheduler.New()
	f := newSpringFrame()
	runUntilIdle(t, s, f)
	f.reset()

	assert.False(t, s.Tick(16, f))
	assert.Equal(t, []string{"step", "layout"}, f.calls)
}

func TestTick_RunsUntilSpringsConverge(t *testing.T) {
	s := scheduler.New()
	f := newSpringFrame()
	runUntilIdle(t, s, f)

	f.dataTo = 100
	require.True(t, s.Invalidate())

	ticks := runUntilIdle(t, s, f)

	assert.Greater(t, ticks, 1)
	assert.Equal(t, 100.0, f.data.Current())
	assert.Equal(t, 100.0, f.drawnData, "the final frame must draw the settled value")
	assert.False(t, s.FramePending())
}

func TestTick_DrawsAfterStepping(t *testing.T) {
	s := scheduler.New()
	f := newSpringFrame()
	runUntilIdle(t, s, f)

	f.dataTo = 50
	s.Invalidate()
	s.Tick(16, f)

	// What was drawn is the value after this frame's step, not before it.
	assert.Equal(t, f.data.Current(), f.drawnData)
	assert.NotZero(t, f.drawnData)
}

func TestTick_OnlyAnimatingLayerIsRedrawn(t *testing.T) {
	s := scheduler.New()
	f := newSpringFrame()
	runUntilIdle(t, s, f)

	f.labelTo = 1
	s.InvalidateLabels()
	s.Tick(16, f)
	f.reset()
	s.Tick(16, f)

	assert.Equal(t, []string{"step", "layout", "labels"}, f.calls)
}

func TestInvalidate_AfterConvergenceRedrawsOnce(t *testing.T) {
	s := scheduler.New()
	f := newSpringFrame()
	runUntilIdle(t, s, f)

	require.True(t, s.Invalidate())
	assert.True(t, s.DatasetsDirty())
	assert.True(t, s.LabelsDirty())

	f.reset()
	assert.False(t, s.Tick(16, f))
	assert.Equal(t, []string{"step", "layout", "datasets", "labels"}, f.calls)

	assert.False(t, s.DatasetsDirty())
	assert.False(t, s.LabelsDirty())
	f.reset()
	s.Tick(16, f)
	assert.Equal(t, []string{"step", "layout"}, f.calls)
}

func TestInvalidate_RequestsOneFrameAtATime(t *testing.T) {
	s := scheduler.New()

	assert.True(t, s.Invalidate())
	assert.False(t, s.Invalidate())
	assert.False(t, s.InvalidateLabels())
	assert.True(t, s.FramePending())
}
