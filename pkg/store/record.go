package store

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// String returns rec[key] as a string. uuid values are rendered canonically.
func String(rec Record, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case [16]byte:
		return uuid.UUID(v).String()
	case uuid.UUID:
		return v.String()
	default:
		return ""
	}
}

// Int returns rec[key] as an int64. Whole floats are accepted because JSON
// columns decode numbers as float64.
func Int(rec Record, key string) int64 {
	return ToInt(rec[key])
}

// ToInt converts any integral number to int64 and returns 0 otherwise.
// Floats outside the int64 range saturate at its bounds instead of wrapping.
func ToInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		switch {
		case n != math.Trunc(n):
			return 0
		case n >= math.MaxInt64:
			return math.MaxInt64
		case n <= math.MinInt64:
			return math.MinInt64
		default:
			return int64(n)
		}
	}
	return 0
}

// Time returns rec[key] as a time, or the zero time.
func Time(rec Record, key string) time.Time {
	t, _ := rec[key].(time.Time)
	return t
}

// OptionalTime is Time for nullable columns.
func OptionalTime(rec Record, key string) *time.Time {
	t, ok := rec[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// Index groups records by the string value of key.
func Index(records []Record, key string) map[string]Record {
	out := make(map[string]Record, len(records))
	for _, rec := range records {
		out[String(rec, key)] = rec
	}
	return out
}
