package steps

import (
	"fmt"
	"strconv"
	"strings"
)

// StringParam returns params[key] as a string. Numbers YAML decoded as
// int or float are formatted back to text.
func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// IntParam returns params[key] as an int. A missing or null key yields
// defaultVal; text that is not an integer is an error.
func IntParam(params map[string]interface{}, key string, defaultVal int) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return defaultVal, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return defaultVal, fmt.Errorf("invalid %s %q: expected an integer", key, n)
		}
		return i, nil
	}
	return defaultVal, fmt.Errorf("invalid %s: expected an integer, got %T", key, v)
}

// FloatParam returns params[key] as a float64. A missing or null key yields
// defaultVal; text that is not a number is an error.
func FloatParam(params map[string]interface{}, key string, defaultVal float64) (float64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return defaultVal, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return defaultVal, fmt.Errorf("invalid %s %q: expected a number", key, n)
		}
		return f, nil
	}
	return defaultVal, fmt.Errorf("invalid %s: expected a number, got %T", key, v)
}

// BoolParam returns params[key] as a bool.
func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// StringsParam returns params[key] as a list of strings. A single string
// is treated as a one element list.
func StringsParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return nil
}

// MapParam returns params[key] as a nested parameter map.
func MapParam(params map[string]interface{}, key string) (map[string]interface{}, bool) {
	m, ok := params[key].(map[string]interface{})
	return m, ok
}
