// Package config loads viewer settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/observability"
	"github.com/wandb/timechart/internal/viewport"
)

const (
	// EnvConfigPath names the file to load settings from.
	EnvConfigPath = "TIMECHART_CONFIG"

	DefaultFrameInterval = 16 * time.Millisecond

	// Range limits applied by normalize.
	MinHorizontalLines, MaxHorizontalLines = 1, 20
	MinXLabels, MaxXLabels                 = 1, 50
	MaxSpringRate                          = 1.0
	MinFrameInterval                       = 4 * time.Millisecond
	MaxFrameInterval                       = time.Second
)

// Config stores the viewer settings.
type Config struct {
	// Viewport is the visible fraction of the timeline on start.
	Viewport ViewportConfig `yaml:"viewport"`

	// Night selects the dark palette. Unset follows the terminal
	// background.
	Night *bool `yaml:"night"`

	// Springs holds the convergence rate per millisecond of each
	// animated quantity.
	Springs SpringConfig `yaml:"springs"`

	// MaxDelta and MinimapMaxDelta cap the frame delta seen by the main
	// chart's and the overview strip's animations.
	MaxDelta        time.Duration `yaml:"max_delta"`
	MinimapMaxDelta time.Duration `yaml:"minimap_max_delta"`

	// ScaleInterval is the minimum time between vertical scale rescans
	// while the viewport keeps moving.
	ScaleInterval time.Duration `yaml:"scale_interval"`

	HorizontalLines    int     `yaml:"horizontal_lines"`
	XLabels            int     `yaml:"x_labels"`
	DensityCoefficient float64 `yaml:"density_coefficient"`

	// MinimapMinWidth is the narrowest overview window in pixels.
	MinimapMinWidth float64 `yaml:"minimap_min_width"`

	// FrameInterval is how often hosts tick an animating chart.
	FrameInterval time.Duration `yaml:"frame_interval"`
}

type ViewportConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type SpringConfig struct {
	ZoomRatio      float64 `yaml:"zoom_ratio"`
	LowerBorder    float64 `yaml:"lower_border"`
	DatasetOpacity float64 `yaml:"dataset_opacity"`
	YLabelOpacity  float64 `yaml:"y_label_opacity"`
	YLabelStroke   float64 `yaml:"y_label_stroke"`
	XLabelOpacity  float64 `yaml:"x_label_opacity"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	p := chart.DefaultParams()
	return Config{
		Viewport: ViewportConfig{
			Start: p.InitialViewport.Start,
			End:   p.InitialViewport.End,
		},
		Springs: SpringConfig{
			ZoomRatio:      p.Springs.ZoomRatio,
			LowerBorder:    p.Springs.LowerBorder,
			DatasetOpacity: p.Springs.DatasetOpacity,
			YLabelOpacity:  p.Springs.YLabelOpacity,
			YLabelStroke:   p.Springs.YLabelStroke,
			XLabelOpacity:  p.Springs.XLabelOpacity,
		},
		MaxDelta:           msDuration(p.MaxDeltaMs),
		MinimapMaxDelta:    msDuration(p.MinimapMaxDeltaMs),
		ScaleInterval:      p.ScaleInterval,
		HorizontalLines:    p.HorizontalLines,
		XLabels:            p.XLabelCount,
		DensityCoefficient: p.DensityCoefficient,
		MinimapMinWidth:    p.Layout.MinimapMinWidth,
		FrameInterval:      DefaultFrameInterval,
	}
}

// Manager gives concurrent read access to the settings.
//
// Settings are read once on creation and never written back.
type Manager struct {
	mu     sync.RWMutex
	path   string
	config Config
	logger *observability.CoreLogger

	// darkBackground reports whether the terminal is dark. Consulted when
	// the file leaves night mode unset.
	darkBackground func() bool
}

type Option func(*Manager)

// WithDarkBackground replaces terminal background detection.
func WithDarkBackground(detect func() bool) Option {
	return func(m *Manager) { m.darkBackground = detect }
}

// Path returns the config file path from the environment, or "" if
// none is set.
func Path() string {
	return os.Getenv(EnvConfigPath)
}

// NewManager loads the settings at path on fsys. An empty path or a
// missing file gives the defaults. A file that does not parse is reported
// and the defaults are used.
func NewManager(
	fsys afero.Fs,
	path string,
	logger *observability.CoreLogger,
	opts ...Option,
) *Manager {
	m := &Manager{
		path:           path,
		config:         Default(),
		logger:         logger,
		darkBackground: termenv.HasDarkBackground,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.load(fsys); err != nil {
		m.logger.CaptureError(fmt.Errorf("config: error loading %q: %v", path, err))
		m.config = Default()
	}
	m.normalize()
	return m
}

func (m *Manager) load(fsys afero.Fs) error {
	if m.path == "" {
		return nil
	}
	data, err := afero.ReadFile(fsys, m.path)
	if errors.Is(err, fs.ErrNotExist) {
		m.logger.Debug(fmt.Sprintf("config: %q not found, using defaults", m.path))
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, &m.config)
}

// Apply merges overrides, shaped like the YAML file, over the current
// settings. Nothing changes if they do not decode.
func (m *Manager) Apply(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	data, err := yaml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("config: %v", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	updated := m.config
	if err := yaml.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("config: invalid override: %v", err)
	}
	m.config = updated
	m.normalize()
	return nil
}

// normalize ensures all config values are within valid ranges.
func (m *Manager) normalize() {
	d := Default()
	c := &m.config

	r := viewport.Range{Start: c.Viewport.Start, End: c.Viewport.End}
	if !r.Valid() {
		c.Viewport = d.Viewport
	}

	rates := []*float64{
		&c.Springs.ZoomRatio,
		&c.Springs.LowerBorder,
		&c.Springs.DatasetOpacity,
		&c.Springs.YLabelOpacity,
		&c.Springs.YLabelStroke,
		&c.Springs.XLabelOpacity,
	}
	defaults := []float64{
		d.Springs.ZoomRatio,
		d.Springs.LowerBorder,
		d.Springs.DatasetOpacity,
		d.Springs.YLabelOpacity,
		d.Springs.YLabelStroke,
		d.Springs.XLabelOpacity,
	}
	for i, rate := range rates {
		if !(*rate > 0) || *rate > MaxSpringRate {
			*rate = defaults[i]
		}
	}

	if c.MaxDelta <= 0 {
		c.MaxDelta = d.MaxDelta
	}
	if c.MinimapMaxDelta <= 0 {
		c.MinimapMaxDelta = d.MinimapMaxDelta
	}
	if c.ScaleInterval < 0 {
		c.ScaleInterval = d.ScaleInterval
	}
	c.HorizontalLines = clamp(c.HorizontalLines, MinHorizontalLines, MaxHorizontalLines)
	c.XLabels = clamp(c.XLabels, MinXLabels, MaxXLabels)
	if !(c.DensityCoefficient > 0) {
		c.DensityCoefficient = d.DensityCoefficient
	}
	if !(c.MinimapMinWidth > 0) {
		c.MinimapMinWidth = d.MinimapMinWidth
	}
	c.FrameInterval = clamp(c.FrameInterval, MinFrameInterval, MaxFrameInterval)
}

func clamp[T int | time.Duration](val, minimum, maximum T) T {
	return min(max(val, minimum), maximum)
}

func msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Config returns a copy of the settings.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Night reports whether to start with the dark palette.
func (m *Manager) Night() bool {
	m.mu.RLock()
	night := m.config.Night
	m.mu.RUnlock()

	if night != nil {
		return *night
	}
	return m.darkBackground()
}

// FrameInterval returns how often hosts tick an animating chart.
func (m *Manager) FrameInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.FrameInterval
}

// ChartParams returns the engine parameters for these settings.
func (m *Manager) ChartParams() chart.Params {
	night := m.Night()

	m.mu.RLock()
	defer m.mu.RUnlock()
	c := m.config

	p := chart.DefaultParams()
	p.Springs = chart.Springs{
		ZoomRatio:      c.Springs.ZoomRatio,
		LowerBorder:    c.Springs.LowerBorder,
		DatasetOpacity: c.Springs.DatasetOpacity,
		YLabelOpacity:  c.Springs.YLabelOpacity,
		YLabelStroke:   c.Springs.YLabelStroke,
		XLabelOpacity:  c.Springs.XLabelOpacity,
	}
	p.MaxDeltaMs = ms(c.MaxDelta)
	p.MinimapMaxDeltaMs = ms(c.MinimapMaxDelta)
	p.ScaleInterval = c.ScaleInterval
	p.HorizontalLines = c.HorizontalLines
	p.XLabelCount = c.XLabels
	p.DensityCoefficient = c.DensityCoefficient
	p.Layout.MinimapMinWidth = c.MinimapMinWidth
	p.InitialViewport = viewport.Range{Start: c.Viewport.Start, End: c.Viewport.End}
	p.Night = night
	return p
}
