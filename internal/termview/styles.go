package termview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/timechart/internal/chart"
)

// Layout constants, in cells.
const (
	titleRows    = 1
	minimapRows  = 3
	legendRows   = 1
	tooltipRows  = 1
	minChartRows = 4
	minCols      = 10
)

// Zone ids for mouse hit testing.
const (
	zoneChart   = "chart"
	zoneMinimap = "minimap"
)

// styles holds the lipgloss styles derived from a chart theme.
type styles struct {
	title   lipgloss.Style
	legend  lipgloss.Style
	hidden  lipgloss.Style
	tooltip lipgloss.Style
	help    lipgloss.Style
}

func stylesFor(theme chart.Theme) styles {
	bg := lipgloss.Color(theme.Background.Hex())
	text := lipgloss.Color(theme.Text.Blend(theme.Background).Hex())
	base := lipgloss.NewStyle().Background(bg)
	return styles{
		title:   base.Bold(true).Foreground(text),
		legend:  base,
		hidden:  base.Foreground(text).Faint(true),
		tooltip: base.Foreground(text),
		help:    base.Foreground(text),
	}
}

// seriesStyle colors a series' legend entry and tooltip value.
func seriesStyle(base lipgloss.Style, c chart.Color) lipgloss.Style {
	return base.Foreground(lipgloss.Color(c.Hex()))
}

// terminalParams converts engine parameters measured in screen pixels to
// braille dots.
func terminalParams(p chart.Params) chart.Params {
	p.Layout.LabelOffset = 2 * dotsPerRow
	p.Layout.TopOffset = dotsPerRow
	p.Layout.XLabelBaseline = 0
	p.Layout.YLabelInset = 0
	p.Layout.YLabelLift = 1
	p.Layout.LineWidth = 1
	p.Layout.GridLineWidth = 1
	p.Layout.MinimapLineWidth = 1
	p.Layout.MinimapMinWidth = max(p.Layout.MinimapMinWidth/5, 4*dotsPerCol)
	p.Layout.MinimapHandleWidth = dotsPerCol
	p.Layout.TooltipGap = 2 * dotsPerCol
	p.Slop = 3
	return p
}
