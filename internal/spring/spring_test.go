package spring_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/timechart/internal/spring"
)

var opacity = spring.Params{Rate: 0.008, Epsilon: 1e-3, MaxDeltaMs: 100}

func TestStep_FirstCallJumpsToTarget(t *testing.T) {
	v := spring.New(opacity)

	got := v.Step(0.75, 16)

	assert.Equal(t, 0.75, got)
	assert.False(t, v.Converging())
}

func TestStep_MovesProportionallyToDelta(t *testing.T) {
	v := spring.New(opacity)
	v.Snap(0)

	got := v.Step(1, 10)

	// k = 0.008 * 10
	assert.InDelta(t, 0.08, got, 1e-12)
	assert.True(t, v.Converging())
}

func TestStep_ClampsLargeDelta(t *testing.T) {
	clamped := spring.New(opacity)
	clamped.Snap(0)
	reference := spring.New(opacity)
	reference.Snap(0)

	assert.Equal(t, reference.Step(1, 100), clamped.Step(1, 5000))
}

func TestStep_NeverOvershoots(t *testing.T) {
	v := spring.New(spring.Params{Rate: 1, Epsilon: 1e-6})
	v.Snap(0)

	assert.Equal(t, 1.0, v.Step(1, 16))
}

func TestStep_ConvergesAndSnapsExactly(t *testing.T) {
	v := spring.New(opacity)
	v.Snap(0)

	ticks := 0
	for v.Converging() || ticks == 0 {
		v.Step(1, 16)
		ticks++
		require.Less(t, ticks, 1000, "value never converged")
	}

	assert.Equal(t, 1.0, v.Current())
	assert.Equal(t, v.Target(), v.Current())
}

func TestStep_RelativeEpsilonScalesWithTarget(t *testing.T) {
	v := spring.New(spring.Params{Rate: 0.008, Epsilon: 1e-4, Relative: true})
	v.Snap(1e-6)

	for range 2000 {
		v.Step(2e-6, 16)
	}

	assert.False(t, v.Converging())
	assert.Equal(t, 2e-6, v.Current())
}

func TestStep_RelativeEpsilonWithZeroTarget(t *testing.T) {
	v := spring.New(spring.Params{Rate: 0.008, Epsilon: 1e-4, Relative: true})
	v.Snap(1)

	for range 5000 {
		v.Step(0, 16)
	}

	assert.Equal(t, 0.0, v.Current())
}

func TestStep_RecoversFromNaN(t *testing.T) {
	v := spring.New(opacity)
	v.Snap(math.NaN())

	assert.Equal(t, 3.0, v.Step(3, 16))
}

func TestZeroValue_JumpsToTarget(t *testing.T) {
	var v spring.Value
	v.Snap(0)

	assert.Equal(t, 5.0, v.Step(5, 16))
	assert.False(t, v.Converging())
}

func TestStart_KeepsTarget(t *testing.T) {
	v := spring.New(opacity)
	v.SetTarget(1)
	v.Start(0)

	assert.Equal(t, 0.0, v.Current())
	assert.Equal(t, 1.0, v.Target())
	assert.True(t, v.Converging())
}
