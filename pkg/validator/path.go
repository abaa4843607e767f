package validator

import (
	"strconv"
	"strings"
)

// Lookup resolves a dot-delimited path such as "orderItems.0.productId"
// against model. Numeric segments index into sequences. ok is false when any
// segment along the way is missing; a present nil value yields (nil, true).
func Lookup(model Model, path string) (any, bool) {
	if path == "" {
		return model, true
	}
	return resolve(model, strings.Split(path, "."))
}

func resolve(node any, segments []string) (any, bool) {
	if len(segments) == 0 {
		return node, true
	}

	head, rest := segments[0], segments[1:]
	switch c := inspect(node); c.kind {
	case containerMapping:
		next, ok := c.mapping[head]
		if !ok {
			return nil, false
		}
		return resolve(next, rest)
	case containerSequence:
		idx, err := strconv.Atoi(head)
		if err != nil || idx < 0 || idx >= len(c.sequence) {
			return nil, false
		}
		return resolve(c.sequence[idx], rest)
	default:
		return nil, false
	}
}

// JoinPath appends child to parent, skipping the separator for an empty parent.
func JoinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}

// SiblingPath replaces the last segment of path with key:
// SiblingPath("orderItems.0.productId", "quantity") is "orderItems.0.quantity".
func SiblingPath(path, key string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return key
	}
	return JoinPath(path[:idx], key)
}

func baseName(path string) string {
	return path[strings.LastIndexByte(path, '.')+1:]
}

type containerKind uint8

const (
	containerScalar containerKind = iota
	containerMapping
	containerSequence
)

type container struct {
	kind     containerKind
	mapping  map[string]any
	sequence []any
}

func inspect(v any) container {
	if m, ok := asMapping(v); ok {
		return container{kind: containerMapping, mapping: m}
	}
	if s, ok := asSequence(v); ok {
		return container{kind: containerSequence, sequence: s}
	}
	return container{kind: containerScalar}
}

func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case map[string]string:
		if m == nil {
			return nil, false
		}
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, s != nil
	case []map[string]any:
		return widen(s)
	case []string:
		return widen(s)
	case []int:
		return widen(s)
	case []int64:
		return widen(s)
	case []float64:
		return widen(s)
	case []bool:
		return widen(s)
	default:
		return nil, false
	}
}

func widen[T any](s []T) ([]any, bool) {
	if s == nil {
		return nil, false
	}
	out := make([]any, len(s))
	for i := range s {
		out[i] = s[i]
	}
	return out, true
}
