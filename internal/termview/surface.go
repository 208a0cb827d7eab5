package termview

import (
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/coords"
)

// Each terminal cell holds a 2x4 block of braille dots. A Surface measures
// everything in dots.
const (
	dotsPerCol = 2
	dotsPerRow = 4

	brailleBlank = '\u2800'
)

type drawState struct {
	sx, sy, tx, ty float64
	stroke, fill   chart.Color
}

// Surface is a chart.Surface over an ntcharts canvas.
//
// Lines are drawn as braille dots one dot wide, so line widths are ignored.
// Colors with an alpha below one are blended onto the background.
type Surface struct {
	canvas     canvas.Model
	cols, rows int
	background chart.Color

	state drawState
	stack []drawState

	// path holds the subpaths of the current path in dots.
	path [][]canvas.Float64Point

	// penUp is set by a non-finite point: the next LineTo starts a new
	// subpath.
	penUp bool
}

var _ chart.Surface = (*Surface)(nil)

func NewSurface(cols, rows int, background chart.Color) *Surface {
	s := &Surface{background: background}
	s.Resize(cols, rows)
	return s
}

// Resize changes the size in cells and clears the surface.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.canvas = canvas.New(s.cols, s.rows)
	s.state = drawState{sx: 1, sy: 1}
	s.stack = nil
	s.path = nil
}

// Size returns the size in dots.
func (s *Surface) Size() chart.Size {
	return chart.Size{
		Width:  float64(s.cols * dotsPerCol),
		Height: float64(s.rows * dotsPerRow),
	}
}

func (s *Surface) SetBackground(c chart.Color) {
	s.background = c
}

func (s *Surface) transform(x, y float64) (float64, float64) {
	return x*s.state.sx + s.state.tx, y*s.state.sy + s.state.ty
}

// cellRect converts a rectangle in dots to the cells it covers.
func (s *Surface) cellRect(x, y, w, h float64) (x0, y0, x1, y1 int) {
	ax, ay := s.transform(x, y)
	bx, by := s.transform(x+w, y+h)
	x0 = max(int(math.Floor(math.Min(ax, bx)/dotsPerCol)), 0)
	y0 = max(int(math.Floor(math.Min(ay, by)/dotsPerRow)), 0)
	x1 = min(int(math.Ceil(math.Max(ax, bx)/dotsPerCol)), s.cols)
	y1 = min(int(math.Ceil(math.Max(ay, by)/dotsPerRow)), s.rows)
	return
}

func (s *Surface) ClearRect(x, y, width, height float64) {
	x0, y0, x1, y1 := s.cellRect(x, y, width, height)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			s.canvas.SetCell(canvas.Point{X: col, Y: row}, canvas.Cell{})
		}
	}
}

// FillRect tints the background of every cell the rectangle touches,
// keeping whatever is drawn in it.
func (s *Surface) FillRect(x, y, width, height float64) {
	if !(width > 0) || !(height > 0) {
		return
	}
	bg := s.lipglossColor(s.state.fill)
	x0, y0, x1, y1 := s.cellRect(x, y, width, height)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			p := canvas.Point{X: col, Y: row}
			cell := s.canvas.Cell(p)
			if cell.Rune == 0 {
				cell.Rune = ' '
			}
			cell.Style = cell.Style.Background(bg)
			s.canvas.SetCell(p, cell)
		}
	}
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *Surface) Restore() {
	if n := len(s.stack); n > 0 {
		s.state = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *Surface) SetTransform(sx, sy, tx, ty float64) {
	s.state.sx, s.state.sy, s.state.tx, s.state.ty = sx, sy, tx, ty
}

func (s *Surface) SetStrokeColor(c chart.Color) { s.state.stroke = c }
func (s *Surface) SetFillColor(c chart.Color)   { s.state.fill = c }
func (s *Surface) SetLineWidth(float64)         {}

func (s *Surface) BeginPath() {
	s.path = s.path[:0]
	s.penUp = false
}

func (s *Surface) point(x, y float64) (canvas.Float64Point, bool) {
	tx, ty := s.transform(x, y)
	return canvas.Float64Point{X: tx, Y: ty}, finite(tx) && finite(ty)
}

func (s *Surface) MoveTo(x, y float64) {
	p, ok := s.point(x, y)
	if !ok {
		s.penUp = true
		return
	}
	s.path = append(s.path, []canvas.Float64Point{p})
	s.penUp = false
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.path) == 0 || s.penUp {
		s.MoveTo(x, y)
		return
	}
	p, ok := s.point(x, y)
	if !ok {
		s.penUp = true
		return
	}
	last := len(s.path) - 1
	s.path[last] = append(s.path[last], p)
}

// Stroke rasterizes the current path into braille dots.
//
// Segments are clipped to the grid first, so the number of dots walked is
// bounded by the grid size however far off screen a point lies.
func (s *Surface) Stroke() {
	if s.cols == 0 || s.rows == 0 || len(s.path) == 0 {
		return
	}
	gw, gh := s.cols*dotsPerCol, s.rows*dotsPerRow
	grid := graph.NewBrailleGrid(s.cols, s.rows, 0, float64(gw-1), 0, float64(gh-1))

	set := func(p canvas.Point) {
		if p.X < 0 || p.Y < 0 || p.X >= gw || p.Y >= gh {
			return
		}
		// The grid is Cartesian with y growing upward.
		grid.Set(grid.GridPoint(canvas.Float64Point{X: float64(p.X), Y: float64(gh - 1 - p.Y)}))
	}

	drawn := false
	for _, sub := range s.path {
		if len(sub) == 1 {
			if p, ok := clipDot(sub[0], gw, gh); ok {
				set(p)
				drawn = true
			}
			continue
		}
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			ax, ay, bx, by, ok := coords.ClipSegment(
				a.X, a.Y, b.X, b.Y, 0, 0, float64(gw), float64(gh))
			if !ok {
				continue
			}
			from := canvas.Point{X: int(math.Floor(ax)), Y: int(math.Floor(ay))}
			to := canvas.Point{X: int(math.Floor(bx)), Y: int(math.Floor(by))}
			for _, p := range graph.GetLinePoints(from, to) {
				set(p)
			}
			drawn = true
		}
	}
	if !drawn {
		return
	}

	// Dots never overwrite text.
	style := lipgloss.NewStyle().Foreground(s.lipglossColor(s.state.stroke))
	for row, line := range grid.BraillePatterns() {
		for col, r := range line {
			if r == brailleBlank {
				continue
			}
			p := canvas.Point{X: col, Y: row}
			cell := s.canvas.Cell(p)
			switch {
			case cell.Rune == 0:
				s.canvas.SetCell(p, canvas.Cell{Rune: r, Style: style})
			case cell.Rune == ' ':
				s.canvas.SetCell(p, canvas.Cell{
					Rune:  r,
					Style: style.Background(cell.Style.GetBackground()),
				})
			case isBraille(cell.Rune):
				// Braille patterns share a base code point, so their dots
				// combine with a bitwise or.
				s.canvas.SetCell(p, canvas.Cell{
					Rune:  cell.Rune | r,
					Style: style.Background(cell.Style.GetBackground()),
				})
			}
		}
	}
}

// clipDot returns the dot holding p when it lies on the grid.
func clipDot(p canvas.Float64Point, gw, gh int) (canvas.Point, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= float64(gw) || p.Y >= float64(gh) {
		return canvas.Point{}, false
	}
	return canvas.Point{X: int(p.X), Y: int(p.Y)}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FillText writes text in the cell row holding the dot just above the
// baseline.
func (s *Surface) FillText(text string, x, y float64) {
	tx, ty := s.transform(x, y)
	col := int(math.Round(tx / dotsPerCol))
	row := int(math.Floor((ty - 1) / dotsPerRow))
	style := lipgloss.NewStyle().Foreground(s.lipglossColor(s.state.fill))
	s.canvas.SetStringWithStyle(canvas.Point{X: col, Y: row}, text, style)
}

func (s *Surface) MeasureText(text string) float64 {
	return float64(runewidth.StringWidth(text) * dotsPerCol)
}

func (s *Surface) lipglossColor(c chart.Color) lipgloss.Color {
	return lipgloss.Color(c.Blend(s.background).Hex())
}

// Cell returns the cell at a column and row.
func (s *Surface) Cell(col, row int) canvas.Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return canvas.Cell{}
	}
	return s.canvas.Cell(canvas.Point{X: col, Y: row})
}

// View renders the surface.
func (s *Surface) View() string {
	return Compose(s)
}

// Compose renders layers stacked cell by cell, the first layer on top.
//
// Text in any layer wins over dots, and dots over empty cells. The
// background of the topmost tinted cell is kept.
func Compose(layers ...*Surface) string {
	if len(layers) == 0 {
		return ""
	}
	cols, rows := layers[0].cols, layers[0].rows
	bg := lipgloss.Color(layers[0].background.Hex())

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			cell := pick(layers, col, row)
			style := cell.Style
			if _, ok := style.GetBackground().(lipgloss.NoColor); ok {
				style = style.Background(bg)
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteString(style.Render(string(r)))
		}
	}
	return sb.String()
}

func pick(layers []*Surface, col, row int) canvas.Cell {
	var dots, empty canvas.Cell
	haveDots, haveEmpty := false, false
	for _, l := range layers {
		c := l.Cell(col, row)
		switch {
		case c.Rune == 0:
			continue
		case isBraille(c.Rune):
			if !haveDots {
				dots, haveDots = c, true
			}
		case c.Rune == ' ':
			if !haveEmpty {
				empty, haveEmpty = c, true
			}
		default:
			return c
		}
	}
	if haveDots {
		if haveEmpty {
			dots.Style = dots.Style.Background(empty.Style.GetBackground())
		}
		return dots
	}
	return empty
}

func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}
