package llm

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Float reads a JSON value as a number. Numbers, numeric strings and
// booleans convert; null, objects, arrays and non-finite values do not.
func Float(v gjson.Result) (float64, bool) {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case gjson.True:
		f = 1
	case gjson.False:
		f = 0
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text reads a JSON value as text, returning fallback when it is missing or null.
// Non-string values are kept as their raw JSON.
func Text(v gjson.Result, fallback string) string {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return fallback
	case v.Type == gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
