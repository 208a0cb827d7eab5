package labels

import (
	"math"
	"strconv"
	"strings"
)

// FormatDate formats a millisecond timestamp as an axis date, "Jan 02".
func FormatDate(ts float64) string {
	return timeOf(ts).Format("Jan 02")
}

// FormatDay formats a millisecond timestamp with its weekday, as shown in
// the tooltip header: "Mon, Jan 02".
func FormatDay(ts float64) string {
	return timeOf(ts).Format("Mon, Jan 02")
}

// FormatValue formats a gridline or tooltip value compactly. A missing
// value formats as "-".
func FormatValue(value float64) string {
	if math.IsNaN(value) {
		return "-"
	}
	if value == 0 {
		return "0"
	}
	if value < 0 {
		return "-" + FormatValue(-value)
	}

	switch {
	case value >= 1e9:
		return formatFloat(value/1e9, 1) + "B"
	case value >= 1e6:
		return formatFloat(value/1e6, 1) + "M"
	case value >= 1e4:
		return formatFloat(value/1e3, 1) + "k"
	case value < 1:
		return formatFloat(value, 2)
	case value < 10:
		return formatFloat(value, 1)
	default:
		return formatFloat(math.Floor(value), 0)
	}
}

// formatFloat formats a float with the given number of decimals, dropping
// trailing zeros.
func formatFloat(value float64, decimals int) string {
	formatted := strconv.FormatFloat(value, 'f', decimals, 64)

	if decimals > 0 && strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}

	if formatted == "" {
		formatted = "0"
	}
	return formatted
}
