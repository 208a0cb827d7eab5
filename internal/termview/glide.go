package termview

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	glideFrequency = 7.0
	glideDamping   = 1.0

	// glideRest is how close to its target, in timeline fractions, the
	// glide must come before it stops.
	glideRest = 1e-4
)

// glide animates keyboard panning of the viewport start.
type glide struct {
	spring harmonica.Spring

	pos, vel, target float64
	active           bool
}

func newGlide(frameInterval time.Duration) *glide {
	fps := int(math.Round(float64(time.Second) / float64(frameInterval)))
	return &glide{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), glideFrequency, glideDamping),
	}
}

// By moves the glide target by delta, starting from start if the glide is
// at rest. The target is clamped to [0, limit].
func (g *glide) By(start, delta, limit float64) {
	if !g.active {
		g.pos, g.vel, g.target = start, 0, start
		g.active = true
	}
	g.target = math.Max(0, math.Min(g.target+delta, limit))
}

// Step advances the glide by one frame and returns the new start.
func (g *glide) Step() float64 {
	if !g.active {
		return g.pos
	}
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, g.target)
	if math.Abs(g.pos-g.target) < glideRest && math.Abs(g.vel) < glideRest {
		g.pos, g.vel = g.target, 0
		g.active = false
	}
	return g.pos
}

// Stop abandons the glide, for when something else moves the viewport.
func (g *glide) Stop() {
	g.active = false
	g.vel = 0
}

func (g *glide) Active() bool {
	return g.active
}
