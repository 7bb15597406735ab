package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number normalizes a numeric raw value to json.Number.
func Number(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		if _, err := n.Float64(); err != nil {
			return "", false
		}
		return n, true
	case float64:
		return floatNumber(n)
	case float32:
		return floatNumber(float64(n))
	case int:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int32:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int64:
		return json.Number(strconv.FormatInt(n, 10)), true
	case uint:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint32:
		return json.Number(strconv.FormatUint(uint64(n), 10)), true
	case uint64:
		return json.Number(strconv.FormatUint(n, 10)), true
	default:
		return "", false
	}
}

// ParseNumber coerces text to json.Number when the entire trimmed string is a
// finite floating-point number. Valid JSON literals are kept verbatim so that
// large integers do not lose precision; other spellings such as "07" or ".5"
// are reformatted.
func ParseNumber(s string) (json.Number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	if json.Valid([]byte(s)) {
		return json.Number(s), true
	}
	return floatNumber(f)
}

func floatNumber(f float64) (json.Number, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64)), true
}

// String returns v if it is a string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// NonEmptyString returns v if it is a string with non-whitespace content.
func NonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// IsNumericKey reports whether k looks like a number, as node ids in a
// workflow graph do.
func IsNumericKey(k string) bool {
	k = strings.TrimSpace(k)
	if k == "" {
		return false
	}
	f, err := strconv.ParseFloat(k, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}
