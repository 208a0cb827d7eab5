package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

//go:generate mockgen -destination=../charttest/surface_mock.go -package=charttest -mock_names=Surface=MockSurface . Surface

// Surface is a 2D drawing target.
//
// Coordinates are in pixels with the origin at the top left. Drawing calls
// are affected by the transform set with SetTransform, which Save and
// Restore push and pop together with colors and line width.
type Surface interface {
	ClearRect(x, y, width, height float64)
	FillRect(x, y, width, height float64)

	Save()
	Restore()

	// SetTransform replaces the current transform with a scale by
	// (sx, sy) followed by a translation by (tx, ty).
	SetTransform(sx, sy, tx, ty float64)

	SetStrokeColor(c Color)
	SetFillColor(c Color)
	SetLineWidth(w float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()

	// FillText draws text with its baseline starting at (x, y).
	FillText(text string, x, y float64)

	// MeasureText returns the width text would take when drawn.
	MeasureText(text string) float64
}

// Size is the pixel size of a drawing surface.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0 &&
		!math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Color is a non-premultiplied RGBA color with alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("chart: invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("chart: invalid color %q: %v", s, err)
	}

	c := Color{A: 1}
	if len(hex) == 8 {
		c.A = float64(v&0xff) / 255
		v >>= 8
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = math.Max(0, math.Min(1, c.A*a))
	return c
}

// Hex formats c as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := math.Max(0, math.Min(1, c.A))
	a = uint32(math.Round(alpha * 0xffff))
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return r, g, b, a
}

// Blend returns c composited over an opaque background.
func (c Color) Blend(background Color) Color {
	a := math.Max(0, math.Min(1, c.A))
	mix := func(fg, bg uint8) uint8 {
		return uint8(math.Round(float64(fg)*a + float64(bg)*(1-a)))
	}
	return Color{
		R: mix(c.R, background.R),
		G: mix(c.G, background.G),
		B: mix(c.B, background.B),
		A: 1,
	}
}
