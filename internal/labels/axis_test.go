package labels_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/timechart/internal/labels"
)

const day = float64(24 * time.Hour / time.Millisecond)

// jan1 is 2019-01-01T00:00:00Z in milliseconds.
const jan1 = 1546300800000.0

func TestYAxis_Desired(t *testing.T) {
	axis := labels.YAxis{Lines: 5, TopOffset: 40}

	got := axis.Desired(2, 10, 240)

	require.Len(t, got, 6)
	var values []float64
	for _, d := range got {
		values = append(values, d.Value)
		assert.Equal(t, d.Key, d.Value)
	}
	assert.Equal(t, []float64{10, 30, 50, 70, 90, 110}, values)
	assert.Equal(t, "110", got[5].Text)
}

func TestYAxis_DesiredRejectsDegenerateRatio(t *testing.T) {
	axis := labels.YAxis{Lines: 5, TopOffset: 40}

	assert.Empty(t, axis.Desired(0, 10, 240))
}

func TestXAxis_StepHalvesWhileZoomingIn(t *testing.T) {
	axis := labels.XAxis{Count: 5, Density: 1.68}
	span := 100 * day

	assert.Equal(t, 20*day, axis.Step(span, 1))
	assert.Equal(t, 20*day, axis.Step(span, 0.6))
	assert.Equal(t, 10*day, axis.Step(span, 0.5))
	assert.Equal(t, 5*day, axis.Step(span, 0.25))
}

func TestXAxis_StepNeverGrowsAsViewportShrinks(t *testing.T) {
	axis := labels.XAxis{Count: 5, Density: 1.68}
	span := 365 * day

	prev := axis.Step(span, 1)
	for w := 0.99; w > 0.01; w -= 0.01 {
		step := axis.Step(span, w)
		assert.LessOrEqual(t, step, prev)
		prev = step
	}
}

func TestXAxis_DesiredAlwaysIncludesLastPoint(t *testing.T) {
	axis := labels.XAxis{Count: 5, Density: 1.68}
	last := jan1 + 97*day

	got := axis.Desired(jan1, last, 1)

	require.NotEmpty(t, got)
	assert.Equal(t, "Jan 01", got[0].Text)
	assert.Equal(t, jan1, got[0].Value)
	assert.Equal(t, labels.FormatDate(last), got[len(got)-1].Text)
	assert.Equal(t, last, got[len(got)-1].Value)
}

func TestXAxis_DesiredDeduplicatesByText(t *testing.T) {
	axis := labels.XAxis{Count: 5, Density: 1.68}

	// Two days of data at full zoom: several steps land on the same day.
	got := axis.Desired(jan1, jan1+2*day, 0.01)

	seen := map[string]bool{}
	for _, d := range got {
		assert.False(t, seen[d.Key], d.Key)
		seen[d.Key] = true
	}
	assert.Equal(t, "Jan 03", got[len(got)-1].Key)
	assert.Equal(t, jan1+2*day, got[len(got)-1].Value)
}

func TestAlignmentFor(t *testing.T) {
	assert.Equal(t, labels.AlignLeft, labels.AlignmentFor(0, 0, 10))
	assert.Equal(t, labels.AlignRight, labels.AlignmentFor(10, 0, 10))
	assert.Equal(t, labels.AlignCenter, labels.AlignmentFor(5, 0, 10))

	assert.Equal(t, 0.0, labels.AlignLeft.Offset(70))
	assert.Equal(t, -70.0, labels.AlignRight.Offset(70))
	assert.Equal(t, -35.0, labels.AlignCenter.Offset(70))
}
