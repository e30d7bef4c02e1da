package mapper

import (
	"encoding/json"
	"strconv"
	"strings"

	"invite-builder/internal/builder/models"
)

// ============================================================
// Bag readers
// ============================================================

var geometryKeys = map[string]bool{
	"x": true, "y": true, "width": true, "height": true, "rotation": true,
}

// number reads a numeric field. Legacy bags carry numbers, numeric strings
// and the occasional "120px".
func number(bag models.ComponentData, key string) (float64, bool) {
	raw, ok := bag[key]
	if !ok || raw == nil {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(v), "px")
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// text returns the first non-empty string among keys.
func text(bag models.ComponentData, keys ...string) string {
	for _, key := range keys {
		switch v := bag[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// flag returns the first boolean among keys.
func flag(bag models.ComponentData, keys ...string) bool {
	for _, key := range keys {
		if v, ok := bag[key].(bool); ok {
			return v
		}
	}
	return false
}

// list returns image URLs from the first present key. Items may be plain
// strings or objects with url/src/imageUrl.
func list(bag models.ComponentData, keys ...string) []string {
	for _, key := range keys {
		switch v := bag[key].(type) {
		case []string:
			if len(v) > 0 {
				return append([]string(nil), v...)
			}
		case []any:
			var out []string
			for _, item := range v {
				switch it := item.(type) {
				case string:
					out = append(out, it)
				case map[string]any:
					if s := text(it, "url", "src", "imageUrl"); s != "" {
						out = append(out, s)
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
