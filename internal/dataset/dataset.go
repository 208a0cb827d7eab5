// Package dataset loads charts from the column-oriented JSON format:
//
//	[{
//	  "columns": [["x", 1542412800000, ...], ["y0", 37, ...]],
//	  "types":   {"x": "x", "y0": "line"},
//	  "names":   {"y0": "#0"},
//	  "colors":  {"y0": "#3DC23F"}
//	}]
//
// The first element of every column is its id. The column of type "x" is
// the timeline, in milliseconds since the epoch, and every "line" column is
// a series. A single chart object is accepted in place of the array.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spf13/afero"
	"github.com/wandb/simplejsonext"

	"github.com/wandb/timechart/internal/chart"
	"github.com/wandb/timechart/internal/observability"
)

const (
	typeTimeline = "x"
	typeLine     = "line"
)

var (
	ErrNoTimeline     = errors.New("dataset: chart has no timeline column")
	ErrLengthMismatch = errors.New("dataset: column length differs from timeline")
	ErrMalformed      = errors.New("dataset: malformed chart")
)

// Chart is one chart of a dataset.
type Chart struct {
	// Title is the chart's position in the file, starting at 1.
	Title string

	Timeline []float64
	Series   []chart.SeriesData
}

// Load reads and parses the dataset at path.
func Load(fs afero.Fs, path string, logger *observability.CoreLogger) ([]Chart, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %v", err)
	}
	defer func() { _ = f.Close() }()

	charts, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return charts, nil
}

// Parse decodes a dataset.
//
// Columns of unknown type are skipped with a warning. Null values become
// NaN and are left out of scale computations.
func Parse(r io.Reader, logger *observability.CoreLogger) ([]Chart, error) {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	value, err := simplejsonext.NewParser(r).UnmarshalFull()
	if err != nil {
		return nil, fmt.Errorf("dataset: %v", err)
	}

	var raw []any
	switch v := value.(type) {
	case []any:
		raw = v
	case map[string]any:
		raw = []any{v}
	default:
		return nil, fmt.Errorf("%w: expected an array of charts, got %T", ErrMalformed, value)
	}

	charts := make([]Chart, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: chart %d is %T", ErrMalformed, i+1, item)
		}
		c, err := parseChart(obj, logger.With("chart", i+1))
		if err != nil {
			return nil, fmt.Errorf("chart %d: %w", i+1, err)
		}
		c.Title = fmt.Sprintf("Chart %d", i+1)
		charts = append(charts, c)
	}
	return charts, nil
}

func parseChart(obj map[string]any, logger *observability.CoreLogger) (Chart, error) {
	columns, ok := obj["columns"].([]any)
	if !ok {
		return Chart{}, fmt.Errorf("%w: missing columns", ErrMalformed)
	}
	types := stringMap(obj["types"])
	names := stringMap(obj["names"])
	colors := stringMap(obj["colors"])

	var c Chart
	hasTimeline := false
	for i, col := range columns {
		id, values, err := parseColumn(col)
		if err != nil {
			return Chart{}, fmt.Errorf("column %d: %w", i, err)
		}

		switch kind := types[id]; kind {
		case typeTimeline:
			c.Timeline = values
			hasTimeline = true
		case typeLine:
			name := names[id]
			if name == "" {
				name = id
			}
			c.Series = append(c.Series, chart.SeriesData{
				ID:     id,
				Name:   name,
				Color:  colors[id],
				Values: values,
			})
		default:
			logger.Warn("dataset: skipping column of unknown type", "column", id, "type", kind)
		}
	}

	if !hasTimeline {
		return Chart{}, ErrNoTimeline
	}
	return c, validate(c)
}

func parseColumn(col any) (string, []float64, error) {
	arr, ok := col.([]any)
	if !ok || len(arr) == 0 {
		return "", nil, fmt.Errorf("%w: column is not a non-empty array", ErrMalformed)
	}
	id, ok := arr[0].(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: column id is %T", ErrMalformed, arr[0])
	}

	values := make([]float64, len(arr)-1)
	for i, v := range arr[1:] {
		switch n := v.(type) {
		case int64:
			values[i] = float64(n)
		case float64:
			values[i] = n
		case nil:
			values[i] = math.NaN()
		default:
			return "", nil, fmt.Errorf("%w: %s[%d] is %T", ErrMalformed, id, i, v)
		}
	}
	return id, values, nil
}

func stringMap(v any) map[string]string {
	obj, _ := v.(map[string]any)
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func validate(c Chart) error {
	n := len(c.Timeline)
	if n < 2 {
		return fmt.Errorf("%w: got %d points", chart.ErrTimelineTooShort, n)
	}
	for i := 1; i < n; i++ {
		if !(c.Timeline[i] > c.Timeline[i-1]) {
			return fmt.Errorf("%w: at index %d", chart.ErrTimelineNotIncreasing, i)
		}
	}
	for _, s := range c.Series {
		if len(s.Values) != n {
			return fmt.Errorf(
				"%w: %q has %d values, timeline has %d",
				ErrLengthMismatch, s.ID, len(s.Values), n,
			)
		}
	}
	return nil
}
