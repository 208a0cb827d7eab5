// Package selection resolves pointer positions on a chart to the data
// point under them and positions the tooltip that describes it.
package selection

import (
	"github.com/wandb/timechart/internal/coords"
	"github.com/wandb/timechart/internal/labels"
)

// Series is the part of a chart series the tooltip reports on.
type Series struct {
	ID      string
	Name    string
	Color   string
	Values  []float64
	Visible bool
}

// Point is the value of one visible series at the selected index.
type Point struct {
	SeriesID string
	Name     string
	Color    string
	Value    float64
}

// Tooltip describes the data under the pointer.
type Tooltip struct {
	Index     int
	Timestamp float64

	// Date is the formatted tooltip header.
	Date string

	Points []Point

	// X is the virtual-space x coordinate of the selected index.
	X float64
}

// Resolve returns the tooltip for the timeline index nearest to pointerX.
//
// The second result is false when no series is visible.
func Resolve(
	m coords.Mapper,
	series []Series,
	pointerX, offsetX, padding, virtualWidth float64,
) (Tooltip, bool) {
	if m.Len() == 0 {
		return Tooltip{}, false
	}
	index := m.IndexAt(pointerX, offsetX, padding, virtualWidth)
	return At(m, series, index, virtualWidth)
}

// At returns the tooltip for a given timeline index, clamped to the
// timeline.
func At(m coords.Mapper, series []Series, index int, virtualWidth float64) (Tooltip, bool) {
	if m.Len() == 0 {
		return Tooltip{}, false
	}
	index = max(0, min(index, m.Len()-1))

	var points []Point
	for _, s := range series {
		if !s.Visible || index >= len(s.Values) {
			continue
		}
		points = append(points, Point{
			SeriesID: s.ID,
			Name:     s.Name,
			Color:    s.Color,
			Value:    s.Values[index],
		})
	}
	if len(points) == 0 {
		return Tooltip{}, false
	}

	ts := m.At(index)
	return Tooltip{
		Index:     index,
		Timestamp: ts,
		Date:      labels.FormatDay(ts),
		Points:    points,
		X:         m.XForIndex(index, virtualWidth),
	}, true
}

// State is the current selection of a chart.
//
// A selection stays in place across redraws until it is replaced or
// cleared.
type State struct {
	index int
	x     float64
	set   bool
}

func (s *State) Select(index int, x float64) {
	s.index = index
	s.x = x
	s.set = true
}

func (s *State) Clear() {
	*s = State{}
}

// Selected returns the selected index and its virtual-space x.
func (s *State) Selected() (index int, x float64, ok bool) {
	return s.index, s.x, s.set
}
