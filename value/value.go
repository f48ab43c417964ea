// Package value provides primitives for extracting values from loosely
// typed legacy records.
//
// These helpers solve common problems:
//   - Type coercion (float64 123 → "123")
//   - Null/empty handling
//   - Multi-value normalization
//   - ISIS subfield occurrence lists
package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// =============================================================================
// TEXT VALUES
// =============================================================================

// Text extracts a string from various representations.
// Handles: string, []byte, fmt.Stringer, json.Number, numeric types, nil
func Text(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		if val == float32(int32(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// =============================================================================
// EMPTINESS
// =============================================================================

// IsEmpty reports whether v carries no usable data: nil, false, a blank
// string, a nil pointer, or an empty slice or map.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case map[string]string:
		return len(val) == 0
	case bool:
		return !val
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String, reflect.Chan:
		return rv.Len() == 0
	}
	return false
}
