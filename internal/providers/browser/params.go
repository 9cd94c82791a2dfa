package browser

import (
	"math"

	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/devtools"
)

// maxIndex bounds page_index. No browser keeps anywhere near this many
// pages open.
const maxIndex = math.MaxInt32

// GetIndex extracts a non-negative integer parameter. A missing or null
// value reads as 0.
func GetIndex(params map[string]interface{}, key string) (int, error) {
	var n float64
	switch v := params[key].(type) {
	case nil:
		return 0, nil
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, devtools.NewError(devtools.KindInvalidArgument, "%s must be an integer, got %v", key, v)
		}
		n = v
	default:
		return 0, devtools.NewError(devtools.KindInvalidArgument, "%s must be an integer, got %T", key, v)
	}

	if n < 0 {
		return 0, devtools.NewError(devtools.KindInvalidArgument, "%s must be 0 or greater, got %v", key, params[key])
	}
	if n > maxIndex {
		return 0, devtools.NewError(devtools.KindInvalidArgument, "%s must be at most %d, got %v", key, maxIndex, params[key])
	}
	return int(n), nil
}

// GetString extracts an optional string parameter
func GetString(params map[string]interface{}, key string) (string, error) {
	switch v := params[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", devtools.NewError(devtools.KindInvalidArgument, "%s must be a string, got %T", key, v)
	}
}
