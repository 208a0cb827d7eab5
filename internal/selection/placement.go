package selection

// Placement is where a tooltip box goes on screen.
type Placement struct {
	// Left is the screen x of the box's left edge.
	Left float64

	// Visible is false when the selected point is scrolled out of view.
	Visible bool
}

// Place positions a tooltip box of the given width next to a point at
// screen x pointX on a canvas canvasWidth wide.
//
// The box goes gap pixels to the right of the point if it fits there,
// otherwise gap pixels to its left, so that it never covers the point.
// If it fits on neither side it is centred on the point and clamped to
// the canvas.
func Place(pointX, boxWidth, canvasWidth, gap float64) Placement {
	if pointX < 0 || pointX > canvasWidth {
		return Placement{}
	}

	if right := pointX + gap; right+boxWidth <= canvasWidth {
		return Placement{Left: right, Visible: true}
	}
	if left := pointX - gap - boxWidth; left >= 0 {
		return Placement{Left: left, Visible: true}
	}

	left := pointX - boxWidth/2
	left = min(left, canvasWidth-boxWidth)
	left = max(left, 0)
	return Placement{Left: left, Visible: true}
}
