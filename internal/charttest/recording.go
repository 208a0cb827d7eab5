package charttest

import (
	"github.com/wandb/timechart/internal/chart"
)

// Op is one drawing call recorded by a RecordingSurface.
type Op struct {
	Name  string
	Args  []float64
	Text  string
	Color chart.Color
}

// RecordingSurface is a chart.Surface that records every call.
//
// MeasureText returns CharWidth per byte of text.
type RecordingSurface struct {
	CharWidth float64

	ops []Op
}

var _ chart.Surface = (*RecordingSurface)(nil)

func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{CharWidth: 6}
}

func (s *RecordingSurface) record(op Op) {
	s.ops = append(s.ops, op)
}

func (s *RecordingSurface) ClearRect(x, y, width, height float64) {
	s.record(Op{Name: "ClearRect", Args: []float64{x, y, width, height}})
}

func (s *RecordingSurface) FillRect(x, y, width, height float64) {
	s.record(Op{Name: "FillRect", Args: []float64{x, y, width, height}})
}

func (s *RecordingSurface) Save()    { s.record(Op{Name: "Save"}) }
func (s *RecordingSurface) Restore() { s.record(Op{Name: "Restore"}) }

func (s *RecordingSurface) SetTransform(sx, sy, tx, ty float64) {
	s.record(Op{Name: "SetTransform", Args: []float64{sx, sy, tx, ty}})
}

func (s *RecordingSurface) SetStrokeColor(c chart.Color) {
	s.record(Op{Name: "SetStrokeColor", Color: c})
}

func (s *RecordingSurface) SetFillColor(c chart.Color) {
	s.record(Op{Name: "SetFillColor", Color: c})
}

func (s *RecordingSurface) SetLineWidth(w float64) {
	s.record(Op{Name: "SetLineWidth", Args: []float64{w}})
}

func (s *RecordingSurface) BeginPath() { s.record(Op{Name: "BeginPath"}) }

func (s *RecordingSurface) MoveTo(x, y float64) {
	s.record(Op{Name: "MoveTo", Args: []float64{x, y}})
}

func (s *RecordingSurface) LineTo(x, y float64) {
	s.record(Op{Name: "LineTo", Args: []float64{x, y}})
}

func (s *RecordingSurface) Stroke() { s.record(Op{Name: "Stroke"}) }

func (s *RecordingSurface) FillText(text string, x, y float64) {
	s.record(Op{Name: "FillText", Args: []float64{x, y}, Text: text})
}

func (s *RecordingSurface) MeasureText(text string) float64 {
	return float64(len(text)) * s.CharWidth
}

// Ops returns the recorded calls in order.
func (s *RecordingSurface) Ops() []Op {
	return s.ops
}

// Count returns how many calls to the named method were recorded.
func (s *RecordingSurface) Count(name string) int {
	n := 0
	for _, op := range s.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Texts returns the text of every FillText call in order.
func (s *RecordingSurface) Texts() []string {
	var texts []string
	for _, op := range s.ops {
		if op.Name == "FillText" {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// Reset forgets every recorded call.
func (s *RecordingSurface) Reset() {
	s.ops = nil
}
