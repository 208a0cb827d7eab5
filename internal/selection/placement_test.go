package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/timechart/internal/selection"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name   string
		pointX float64
		want   selection.Placement
	}{
		{"right of point", 100, selection.Placement{Left: 110, Visible: true}},
		{"left of point near right edge", 450, selection.Placement{Left: 340, Visible: true}},
		{"off screen left", -1, selection.Placement{}},
		{"off screen right", 501, selection.Placement{}},
		{"right edge exactly", 500, selection.Placement{Left: 390, Visible: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selection.Place(tt.pointX, 100, 500, 10))
		})
	}
}

func TestPlace_ClampsWhenNeitherSideFits(t *testing.T) {
	got := selection.Place(100, 180, 250, 10)
	assert.Equal(t, selection.Placement{Left: 10, Visible: true}, got)

	got = selection.Place(10, 400, 250, 10)
	assert.Equal(t, selection.Placement{Left: 0, Visible: true}, got)
}

func TestPlace_NeverLeavesCanvas(t *testing.T) {
	for x := 0.0; x <= 300; x += 7 {
		for _, w := range []float64{20, 120, 290} {
			p := selection.Place(x, w, 300, 8)
			assert.True(t, p.Visible)
			assert.GreaterOrEqual(t, p.Left, 0.0)
			assert.LessOrEqual(t, p.Left+w, 300.0)
		}
	}
}
