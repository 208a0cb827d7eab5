// Package snapshot renders charts to PNG images.
//
// A snapshot runs the chart engine headless: it ticks frames at a fixed
// interval until every animation has settled and saves what was drawn.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"runtime"
	"time"

	"github.com/fogleman/gg"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/coords"
	"github.com/wandb/timechart/internal/dataset"
	"github.com/wandb/timechart/internal/labels"
	"github.com/wandb/timechart/internal/observability"
	"github.com/wandb/timechart/internal/viewport"
)

const (
	minimapGap     = 16
	tooltipPadding = 8
	tooltipLine    = 16
	tooltipRadius  = 6
)

// ErrNotSettled is returned when a chart still animates after the frame
// limit.
var ErrNotSettled = errors.New("snapshot: chart did not settle")

// Options controls how a chart is rendered.
type Options struct {
	// Width and Height are the size of the main chart in pixels, and
	// MinimapHeight the height of the overview strip below it.
	Width, Height int
	MinimapHeight int

	// Viewport is the visible range. Nil uses the default.
	Viewport *viewport.Range

	Night bool

	// Hidden lists the ids of series to leave out.
	Hidden []string

	// Select is the timeline index to show a tooltip for, or -1.
	Select int

	Params chart.Params

	// FrameInterval is the time between two simulated frames, and
	// MaxFrames how many run before giving up on settling.
	FrameInterval time.Duration
	MaxFrames     int
}

// DefaultOptions returns options for a 1000x500 chart.
func DefaultOptions() Options {
	return Options{
		Width:         1000,
		Height:        500,
		MinimapHeight: 80,
		Select:        -1,
		Params:        chart.DefaultParams(),
		FrameInterval: 16 * time.Millisecond,
		MaxFrames:     5000,
	}
}

// Render draws one chart and returns the composed image.
func Render(
	ctx context.Context,
	data dataset.Chart,
	opts Options,
	logger *observability.CoreLogger,
) (image.Image, error) {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.MinimapHeight <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d+%d",
			opts.Width, opts.Height, opts.MinimapHeight)
	}

	datasets := NewSurface(opts.Width, opts.Height)
	labelLayer := NewSurface(opts.Width, opts.Height)
	minimap := NewSurface(opts.Width, opts.MinimapHeight)

	params := opts.Params
	params.Night = opts.Night
	if opts.Viewport != nil {
		params.InitialViewport = *opts.Viewport
	}

	engine, err := chart.New(chart.Config{
		Timeline:    data.Timeline,
		Series:      data.Series,
		Datasets:    datasets,
		Labels:      labelLayer,
		Minimap:     minimap,
		MainSize:    datasets.Size(),
		MinimapSize: minimap.Size(),
		Params:      params,
		Logger:      logger.With("chart", data.Title),
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", data.Title, err)
	}
	defer engine.Close()

	for _, id := range opts.Hidden {
		if !engine.ToggleSeries(id, false) {
			logger.Warn("snapshot: unknown series", "series", id)
		}
	}

	if opts.Select >= 0 && opts.Select < len(data.Timeline) {
		g := engine.Geometry()
		if g.VirtualWidth == 0 {
			// Geometry is filled in by the first frame.
			engine.Tick(0)
			g = engine.Geometry()
		}
		x := coords.NewMapper(data.Timeline).XForIndex(opts.Select, g.VirtualWidth) + g.OffsetX
		engine.PointerMove(x)
	}

	if err := settle(ctx, engine, opts); err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", data.Title, err)
	}

	return compose(engine, datasets, labelLayer, minimap, opts), nil
}

// settle ticks the engine until it stops asking for frames.
func settle(ctx context.Context, engine *chart.Chart, opts Options) error {
	deltaMs := float64(opts.FrameInterval) / float64(time.Millisecond)
	for range opts.MaxFrames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !engine.Tick(deltaMs) {
			return nil
		}
	}
	return ErrNotSettled
}

func compose(engine *chart.Chart, datasets, labelLayer, minimap *Surface, opts Options) image.Image {
	theme := engine.Theme()
	dc := gg.NewContext(opts.Width, opts.Height+minimapGap+opts.MinimapHeight)
	dc.SetColor(theme.Background)
	dc.Clear()

	dc.DrawImage(datasets.Image(), 0, 0)
	dc.DrawImage(labelLayer.Image(), 0, 0)
	dc.DrawImage(minimap.Image(), 0, opts.Height+minimapGap)

	drawTooltip(dc, engine, theme, opts.Params.Layout.TopOffset)
	return dc.Image()
}

// drawTooltip draws the selected point's date and values in a box beside
// it.
func drawTooltip(dc *gg.Context, engine *chart.Chart, theme chart.Theme, top float64) {
	tip, _, ok := engine.Selection(0)
	if !ok {
		return
	}

	lines := []string{tip.Date}
	for _, p := range tip.Points {
		lines = append(lines, fmt.Sprintf("%s: %s", p.Name, labels.FormatValue(p.Value)))
	}
	var width float64
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		width = max(width, w)
	}
	width += 2 * tooltipPadding
	height := float64(len(lines))*tooltipLine + 2*tooltipPadding

	_, place, _ := engine.Selection(width)
	if !place.Visible {
		return
	}

	dc.DrawRoundedRectangle(place.Left, top, width, height, tooltipRadius)
	dc.SetColor(theme.Background)
	dc.FillPreserve()
	dc.SetColor(theme.Grid)
	dc.SetLineWidth(1)
	dc.Stroke()

	for i, line := range lines {
		color := theme.Text
		if i > 0 {
			if c, err := chart.ParseHex(tip.Points[i-1].Color); err == nil {
				color = c
			}
		}
		dc.SetColor(color)
		dc.DrawString(line, place.Left+tooltipPadding, top+tooltipPadding+float64(i+1)*tooltipLine-4)
	}
}

// RenderAll renders charts concurrently and writes them to dir on fs as
// chart-1.png, chart-2.png and so on. It returns the written paths.
func RenderAll(
	ctx context.Context,
	fs afero.Fs,
	dir string,
	charts []dataset.Chart,
	opts Options,
	logger *observability.CoreLogger,
) ([]string, error) {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: %v", err)
	}

	paths := make([]string, len(charts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, c := range charts {
		paths[i] = path.Join(dir, fmt.Sprintf("chart-%d.png", i+1))
		g.Go(func() error {
			img, err := Render(ctx, c, opts, logger)
			if err != nil {
				return err
			}
			if err := writePNG(fs, paths[i], img); err != nil {
				return err
			}
			logger.Debug(fmt.Sprintf("snapshot: wrote %s", paths[i]))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writePNG(fs afero.Fs, name string, img image.Image) (err error) {
	f, err := fs.Create(name)
	if err != nil {
		return fmt.Errorf("snapshot: %v", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("snapshot: %v", closeErr)
		}
	}()

	if err := gg.NewContextForImage(img).EncodePNG(f); err != nil {
		return fmt.Errorf("snapshot: encoding %s: %v", name, err)
	}
	return nil
}
