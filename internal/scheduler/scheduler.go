// Package scheduler decides, frame by frame, what a chart must redraw and
// whether the host should schedule another frame.
package scheduler

// Activity is what a frame's animation step reports.
type Activity struct {
	// DatasetsChanged is set when a quantity the dataset layer depends on
	// moved during this step.
	DatasetsChanged bool

	// LabelsChanged is set when a quantity the label layer depends on
	// moved during this step.
	LabelsChanged bool

	// Animating is set when some quantity has not reached its target yet,
	// or when a deferred recomputation is still owed, so that the next
	// frame will change something.
	Animating bool
}

// Frame is the work done by one display refresh, split into phases that
// the scheduler runs in order.
type Frame interface {
	// Step advances every animated quantity by deltaMs.
	Step(deltaMs float64) Activity

	// Layout derives pixel geometry from the stepped quantities.
	Layout()

	// DrawDatasets redraws the series layer.
	DrawDatasets()

	// DrawLabels redraws the grid and label layer.
	DrawLabels()
}

// Scheduler tracks which layers are stale.
//
// The host calls Invalidate after every mutation and schedules a frame if
// it returns true; on every frame it calls Tick and schedules another one
// only if Tick returns true. Once every quantity has converged and no
// mutation happens, Tick returns false and the loop stops.
type Scheduler struct {
	datasetsDirty bool
	labelsDirty   bool
	framePending  bool
}

// New returns a Scheduler with both layers dirty, so that the first frame
// paints everything.
func New() *Scheduler {
	return &Scheduler{datasetsDirty: true, labelsDirty: true}
}

// Invalidate marks both layers dirty and reports whether the caller must
// request a frame, which is the case when none is pending.
func (s *Scheduler) Invalidate() bool {
	s.datasetsDirty = true
	s.labelsDirty = true
	return s.request()
}

// InvalidateLabels marks only the label layer dirty.
func (s *Scheduler) InvalidateLabels() bool {
	s.labelsDirty = true
	return s.request()
}

func (s *Scheduler) request() bool {
	if s.framePending {
		return false
	}
	s.framePending = true
	return true
}

// Tick runs one frame: it steps f, lays it out, then redraws each layer
// that is dirty or whose quantities moved. It reports whether another
// frame is needed.
func (s *Scheduler) Tick(deltaMs float64, f Frame) bool {
	activity := f.Step(deltaMs)
	f.Layout()

	if s.datasetsDirty || activity.DatasetsChanged {
		f.DrawDatasets()
	}
	if s.labelsDirty || activity.LabelsChanged {
		f.DrawLabels()
	}

	s.datasetsDirty = false
	s.labelsDirty = false
	s.framePending = activity.Animating
	return activity.Animating
}

// DatasetsDirty reports whether the series layer will be redrawn on the
// next frame regardless of animation.
func (s *Scheduler) DatasetsDirty() bool {
	return s.datasetsDirty
}

// LabelsDirty reports whether the label layer will be redrawn on the next
// frame regardless of animation.
func (s *Scheduler) LabelsDirty() bool {
	return s.labelsDirty
}

// FramePending reports whether a frame has been requested and not yet
// run, or the last frame asked for a successor.
func (s *Scheduler) FramePending() bool {
	return s.framePending
}
