package sanitizer

// Fields maps a top-level key of a decoded request body to the transform
// applied to its string value.
type Fields map[string]func(string) string

// Model returns a sanitized deep copy of a decoded JSON body. Every string,
// at any depth, is trimmed; top-level keys listed in fields get their extra
// transform afterwards. Non-string values are copied as they are, so a
// wrongly typed value still reaches the validator and is reported there.
func Model(in map[string]any, fields Fields) map[string]any {
	if in == nil {
		return nil
	}

	out := make(map[string]any, len(in))
	for k, v := range in {
		v = deep(v)
		if fn, ok := fields[k]; ok {
			if s, isString := v.(string); isString {
				v = fn(s)
			}
		}
		out[k] = v
	}
	return out
}

func deep(v any) any {
	switch t := v.(type) {
	case string:
		return Trim(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deep(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deep(item)
		}
		return out
	default:
		return v
	}
}
