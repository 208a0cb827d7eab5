package cliutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOverrides converts "path.to.key=value" pairs into the nested map
// they describe. Values that parse as numbers or booleans are converted.
func ParseOverrides(pairs []string) (map[string]any, error) {
	config := make(map[string]any)
	for _, pair := range pairs {
		path, value, ok := strings.Cut(pair, "=")
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid override %q, expected key=value", pair)
		}

		segments := strings.Split(path, ".")
		current := config
		for i, segment := range segments {
			if segment == "" {
				return nil, fmt.Errorf("invalid override key %q", path)
			}
			if i == len(segments)-1 {
				current[segment] = convertValue(value)
				break
			}

			// Create nested map if it doesn't exist
			next, exists := current[segment]
			if !exists {
				next = make(map[string]any)
				current[segment] = next
			}
			nested, ok := next.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("override %q conflicts with %q", path, segment)
			}
			current = nested
		}
	}
	return config, nil
}

func convertValue(value string) any {
	if num, err := strconv.ParseFloat(value, 64); err == nil {
		return num
	}
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}
