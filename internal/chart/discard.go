package chart

// discardSurface is a Surface that draws nothing.
type discardSurface struct{}

func (discardSurface) ClearRect(x, y, width, height float64) {}
func (discardSurface) FillRect(x, y, width, height float64)  {}
func (discardSurface) Save()                                 {}
func (discardSurface) Restore()                              {}
func (discardSurface) SetTransform(sx, sy, tx, ty float64)   {}
func (discardSurface) SetStrokeColor(Color)                  {}
func (discardSurface) SetFillColor(Color)                    {}
func (discardSurface) SetLineWidth(float64)                  {}
func (discardSurface) BeginPath()                            {}
func (discardSurface) MoveTo(x, y float64)                   {}
func (discardSurface) LineTo(x, y float64)                   {}
func (discardSurface) Stroke()                               {}
func (discardSurface) FillText(text string, x, y float64)    {}
func (discardSurface) MeasureText(text string) float64       { return 0 }

func orDiscard(s Surface) Surface {
	if s == nil {
		return discardSurface{}
	}
	return s
}
