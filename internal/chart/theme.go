package chart

// Theme is the palette of everything a chart draws apart from its series.
type Theme struct {
	Background Color

	// Grid is the color of horizontal gridlines and the selection line.
	Grid Color

	// Text is the color of axis labels.
	Text Color

	// MinimapShade covers the parts of the overview strip outside the
	// window.
	MinimapShade Color

	// MinimapHandle is the color of the window frame.
	MinimapHandle Color
}

var (
	// DayTheme is the light palette.
	DayTheme = Theme{
		Background:    RGB(0xff, 0xff, 0xff),
		Grid:          Color{A: 0.16},
		Text:          Color{A: 0.4},
		MinimapShade:  Color{R: 0xf5, G: 0xf9, B: 0xfb, A: 0.8},
		MinimapHandle: Color{R: 0xdd, G: 0xea, B: 0xf3, A: 1},
	}

	// NightTheme is the dark palette.
	NightTheme = Theme{
		Background:    RGB(0x24, 0x2f, 0x3e),
		Grid:          Color{R: 0xff, G: 0xff, B: 0xff, A: 0.1},
		Text:          Color{R: 0x54, G: 0x67, B: 0x78, A: 1},
		MinimapShade:  Color{R: 0x1f, G: 0x2a, B: 0x38, A: 0.6},
		MinimapHandle: Color{R: 0x40, G: 0x56, B: 0x6b, A: 1},
	}
)

// ThemeFor returns the palette for the night-mode flag.
func ThemeFor(night bool) Theme {
	if night {
		return NightTheme
	}
	return DayTheme
}
