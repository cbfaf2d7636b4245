package reconcile

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// LOOSE VALUE COERCION
// =============================================================================
// Values come from encoding/json decoded into `any`: float64, string, bool,
// nil, []any, map[string]any. Anything unusable collapses to a default.

func asString(v any, def string) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return def
	}
}

// asNumber mirrors a lenient numeric cast: unparsable, NaN and infinite
// values become 0.
func asNumber(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NonNegative coerces v to a number >= 0, falling back to 0.
func NonNegative(v any) float64 {
	return math.Max(0, asNumber(v))
}

// Minutes coerces v to whole non-negative minutes, truncating fractions.
func Minutes(v any) int {
	return int(math.Trunc(NonNegative(v)))
}

// Bool coerces v to a boolean. Absent values use def.
func Bool(v any, def bool) bool {
	switch x := v.(type) {
	case nil:
		return def
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			return b
		}
		return x != ""
	default:
		return true
	}
}
