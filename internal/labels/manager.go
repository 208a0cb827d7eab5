package labels

import "github.com/wandb/timechart/internal/spring"

// Params tunes the fade animations of a Manager.
type Params struct {
	Opacity spring.Params
	Stroke  spring.Params
}

// Manager maintains the set of labels of one axis.
//
// Update declares which labels should be visible; Step animates every
// tracked label toward its target; Prune deletes the labels that have
// finished fading out. Labels are keyed so that a label that stays in the
// desired set across updates keeps its animation state.
type Manager[K comparable] struct {
	params Params
	labels *Set[K, *Label[K]]
	nextID uint64
}

func NewManager[K comparable](params Params) *Manager[K] {
	return &Manager[K]{
		params: params,
		labels: NewSet[K, *Label[K]](),
	}
}

// Update makes desired the target label set.
//
// Tracked labels not in desired start fading out. Tracked labels in
// desired fade back in from wherever they are. Desired labels that are not
// tracked are added at zero opacity.
func (m *Manager[K]) Update(desired []Desired[K]) {
	m.labels.Each(func(_ K, l *Label[K]) {
		l.opacity.SetTarget(0)
		l.stroke.SetTarget(0)
	})

	for _, d := range desired {
		if l, ok := m.labels.Get(d.Key); ok {
			l.Value = d.Value
			l.Text = d.Text
			l.opacity.SetTarget(1)
			l.stroke.SetTarget(1)
			continue
		}

		m.nextID++
		l := &Label[K]{
			ID:      m.nextID,
			Key:     d.Key,
			Value:   d.Value,
			Text:    d.Text,
			opacity: *spring.New(m.params.Opacity),
			stroke:  *spring.New(m.params.Stroke),
		}
		l.opacity.Start(0)
		l.opacity.SetTarget(1)
		l.stroke.Start(0)
		l.stroke.SetTarget(1)
		m.labels.Put(d.Key, l)
	}
}

// Step advances every label's fade by deltaMs. It reports whether any
// label moved during this step and whether any is still animating.
func (m *Manager[K]) Step(deltaMs float64) (changed, animating bool) {
	m.labels.Each(func(_ K, l *Label[K]) {
		opacity, stroke := l.opacity.Current(), l.stroke.Current()
		l.opacity.Step(l.opacity.Target(), deltaMs)
		l.stroke.Step(l.stroke.Target(), deltaMs)
		if l.opacity.Current() != opacity || l.stroke.Current() != stroke {
			changed = true
		}
		if l.opacity.Converging() || l.stroke.Converging() {
			animating = true
		}
	})
	return changed, animating
}

// Prune deletes the labels that are fully transparent and not coming back,
// and returns how many were deleted.
func (m *Manager[K]) Prune() int {
	return m.labels.RemoveIf(func(_ K, l *Label[K]) bool {
		return l.State() == Fading && l.stroke.Target() == 0 &&
			l.opacity.Current() == 0 && l.stroke.Current() == 0
	})
}

// Get returns the tracked label with the given key.
func (m *Manager[K]) Get(key K) (*Label[K], bool) {
	return m.labels.Get(key)
}

// Each calls fn for every tracked label in insertion order.
func (m *Manager[K]) Each(fn func(*Label[K])) {
	m.labels.Each(func(_ K, l *Label[K]) { fn(l) })
}

// Len returns the number of tracked labels, fading ones included.
func (m *Manager[K]) Len() int {
	return m.labels.Len()
}

// Clear forgets every tracked label.
func (m *Manager[K]) Clear() {
	m.labels = NewSet[K, *Label[K]]()
}
