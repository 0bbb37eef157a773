// Package parseutil centralizes defensive coercion of loosely typed API
// payload values. Upstream providers return numbers as strings with unit
// suffixes or locale decimals, so every caller goes through one default
// policy instead of coercing inline.
package parseutil

import (
	"strconv"
	"strings"
)

// Float coerces a payload value to float64. String values may carry a
// trailing "%" or use a comma as the decimal separator. Missing or
// unparseable values yield def; ratio and percentage callers pass a
// neutral non-zero default so unknown stats never read as zero.
func Float(raw any, def float64) float64 {
	switch typed := raw.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		cleaned := strings.TrimSpace(typed)
		cleaned = strings.TrimSuffix(cleaned, "%")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			return def
		}
		value, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return def
		}
		return value
	default:
		return def
	}
}

// Int coerces a payload value to int. Count fields pass def 0.
func Int(raw any, def int) int {
	return int(Int64(raw, int64(def)))
}

func Int64(raw any, def int64) int64 {
	switch typed := raw.(type) {
	case float64:
		return int64(typed)
	case float32:
		return int64(typed)
	case int:
		return int64(typed)
	case int64:
		return typed
	case string:
		cleaned := strings.TrimSpace(typed)
		if cleaned == "" {
			return def
		}
		value, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			float := Float(cleaned, float64(def))
			return int64(float)
		}
		return value
	default:
		return def
	}
}

// MapString reads a string key from a decoded JSON object.
func MapString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// MapFloat reads key from src through Float.
func MapFloat(src map[string]any, key string, def float64) float64 {
	if src == nil {
		return def
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return def
	}
	return Float(raw, def)
}

// MapInt reads key from src through Int.
func MapInt(src map[string]any, key string, def int) int {
	if src == nil {
		return def
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return def
	}
	return Int(raw, def)
}

// MapObject descends into a nested JSON object, unwrapping a "data"
// envelope when present.
func MapObject(raw any) map[string]any {
	if raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

func FirstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
