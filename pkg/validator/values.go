package validator

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// absent reports whether a resolved value should be treated as not provided.
func absent(v any, ok bool) bool {
	return !ok || v == nil
}

// numeric converts Go number types to float64. Strings are not numbers here.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case float64:
		return n, !math.IsNaN(n)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// coerceNumber is numeric plus numeric strings, used by bound checks.
func coerceNumber(v any) (float64, bool) {
	if f, ok := numeric(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// maxSafeInteger is the largest integer a float64 holds exactly. Larger JSON
// numbers may already have been rounded by the decoder.
const maxSafeInteger = 1<<53 - 1

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isSafeInteger(float64(n))
	case float64:
		return isSafeInteger(n)
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return true
		}
		f, err := n.Float64()
		return err == nil && isSafeInteger(f)
	default:
		return false
	}
}

func isSafeInteger(f float64) bool {
	return !math.IsNaN(f) && math.Trunc(f) == f && math.Abs(f) <= maxSafeInteger
}

// canonical maps storage representations onto the shapes found in request
// models: pgx decodes uuid columns as [16]byte.
func canonical(v any) any {
	switch x := v.(type) {
	case [16]byte:
		return uuid.UUID(x).String()
	case uuid.UUID:
		return x.String()
	case *uuid.UUID:
		if x == nil {
			return nil
		}
		return x.String()
	default:
		return v
	}
}

// equal compares two scalar-or-composite values. Numbers compare by value
// regardless of their Go type.
func equal(a, b any) bool {
	a, b = canonical(a), canonical(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if af, ok := numeric(a); ok {
		bf, ok := numeric(b)
		return ok && af == bf
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}

	if am, ok := asMapping(a); ok {
		bm, ok := asMapping(b)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !equal(av, bv) {
				return false
			}
		}
		return true
	}

	if as, ok := asSequence(a); ok {
		bs, ok := asSequence(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}
