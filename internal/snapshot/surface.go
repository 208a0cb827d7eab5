package snapshot

import (
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/coords"
)

type transform struct {
	sx, sy, tx, ty float64
}

type point struct {
	x, y float64
}

// Surface is a chart.Surface over a gg context.
//
// Paths are kept in pixels and clipped to the image before they reach gg,
// whose rasterizer works in fixed point and overflows on far off-image
// coordinates.
type Surface struct {
	dc *gg.Context

	stroke, fill chart.Color
	lineWidth    float64
	xf           transform
	stack        []surfaceState

	path  [][]point
	penUp bool
}

type surfaceState struct {
	stroke, fill chart.Color
	lineWidth    float64
	xf           transform
}

var _ chart.Surface = (*Surface)(nil)

// NewSurface returns a transparent surface of the given size in pixels.
func NewSurface(width, height int) *Surface {
	return &Surface{
		dc:        gg.NewContext(max(width, 1), max(height, 1)),
		lineWidth: 1,
		xf:        transform{sx: 1, sy: 1},
	}
}

// Image returns the pixels drawn so far.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

func (s *Surface) Size() chart.Size {
	return chart.Size{Width: float64(s.dc.Width()), Height: float64(s.dc.Height())}
}

// ClearRect makes the pixels of a rectangle transparent.
func (s *Surface) ClearRect(x, y, width, height float64) {
	img, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	x0, y0 := s.apply(x, y)
	x1, y1 := s.apply(x+width, y+height)
	rect := image.Rect(
		int(math.Floor(math.Min(x0, x1))), int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))), int(math.Ceil(math.Max(y0, y1))),
	)
	draw.Draw(img, rect, image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) FillRect(x, y, width, height float64) {
	s.dc.SetColor(s.fill)
	s.dc.DrawRectangle(x, y, width, height)
	s.dc.Fill()
}

func (s *Surface) Save() {
	s.stack = append(s.stack, surfaceState{
		stroke:    s.stroke,
		fill:      s.fill,
		lineWidth: s.lineWidth,
		xf:        s.xf,
	})
	s.dc.Push()
}

func (s *Surface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	st := s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.stroke, s.fill, s.lineWidth, s.xf = st.stroke, st.fill, st.lineWidth, st.xf
	s.dc.Pop()
}

func (s *Surface) SetTransform(sx, sy, tx, ty float64) {
	s.xf = transform{sx: sx, sy: sy, tx: tx, ty: ty}
	s.dc.Identity()
	s.dc.Translate(tx, ty)
	s.dc.Scale(sx, sy)
}

func (s *Surface) apply(x, y float64) (float64, float64) {
	return x*s.xf.sx + s.xf.tx, y*s.xf.sy + s.xf.ty
}

func (s *Surface) SetStrokeColor(c chart.Color) { s.stroke = c }
func (s *Surface) SetFillColor(c chart.Color)   { s.fill = c }
func (s *Surface) SetLineWidth(w float64)       { s.lineWidth = w }

func (s *Surface) BeginPath() {
	s.path = s.path[:0]
	s.penUp = false
}

func (s *Surface) MoveTo(x, y float64) {
	px, py := s.apply(x, y)
	if !finite(px) || !finite(py) {
		s.penUp = true
		return
	}
	s.path = append(s.path, []point{{px, py}})
	s.penUp = false
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.path) == 0 || s.penUp {
		s.MoveTo(x, y)
		return
	}
	px, py := s.apply(x, y)
	if !finite(px) || !finite(py) {
		s.penUp = true
		return
	}
	last := len(s.path) - 1
	s.path[last] = append(s.path[last], point{px, py})
}

// Stroke outlines the current path, which stays current.
func (s *Surface) Stroke() {
	pad := s.lineWidth + 1
	maxX := float64(s.dc.Width()) + pad
	maxY := float64(s.dc.Height()) + pad

	s.dc.Push()
	defer s.dc.Pop()
	s.dc.Identity()
	s.dc.ClearPath()
	s.dc.SetLineWidth(s.lineWidth)

	drawn := false
	for _, sub := range s.path {
		joined := false
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			ax, ay, bx, by, ok := coords.ClipSegment(a.x, a.y, b.x, b.y, -pad, -pad, maxX, maxY)
			if !ok {
				joined = false
				continue
			}
			if !joined || ax != a.x || ay != a.y {
				s.dc.MoveTo(ax, ay)
			}
			s.dc.LineTo(bx, by)
			joined = bx == b.x && by == b.y
			drawn = true
		}
	}
	if !drawn {
		return
	}
	s.dc.SetColor(s.stroke)
	s.dc.Stroke()
}

// FillText draws text with its baseline at y.
func (s *Surface) FillText(text string, x, y float64) {
	s.dc.SetColor(s.fill)
	s.dc.DrawString(text, x, y)
}

func (s *Surface) MeasureText(text string) float64 {
	w, _ := s.dc.MeasureString(text)
	return w
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
