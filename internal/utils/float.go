package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat64 converts numeric values and numeric strings to float64.
// Returns the converted value and true if successful, or 0 and false if conversion fails.
// Strings are trimmed; empty strings, NaN and infinities are rejected.
func ToFloat64(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		return parseFloat(val)
	default:
		return 0, false
	}
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MustToFloat64 converts a value to float64, returning 0 if conversion fails.
// Use this when you need a default value instead of checking the ok return.
func MustToFloat64(v interface{}) float64 {
	f, _ := ToFloat64(v)
	return f
}

// ToInt converts a value to int, rounding fractional input half away from zero.
// Returns 0 if conversion fails.
func ToInt(v interface{}) int {
	f, ok := ToFloat64(v)
	if !ok {
		return 0
	}
	return int(math.Round(f))
}

// ToFloat64Ptr converts a value to a *float64, or nil if conversion fails.
// Optional measurements use nil for "not reported".
func ToFloat64Ptr(v interface{}) *float64 {
	f, ok := ToFloat64(v)
	if !ok {
		return nil
	}
	return &f
}

// FirstNumeric returns the first value in vs that converts to a non-zero float64.
func FirstNumeric(vs ...interface{}) float64 {
	for _, v := range vs {
		if f, ok := ToFloat64(v); ok && f != 0 {
			return f
		}
	}
	return 0
}
