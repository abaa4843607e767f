package validator

import "context"

type inRule struct {
	values []any
}

// In accepts only values equal to one of values.
func In(values ...any) Rule {
	return inRule{values: append([]any(nil), values...)}
}

func (inRule) Kind() RuleKind { return KindIn }

func (r inRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	for _, allowed := range r.values {
		if equal(v, allowed) {
			return nil
		}
	}
	return fail(path, KindIn, "This value is not allowed", map[string]any{
		"values": append([]any(nil), r.values...),
	})
}

type distinctRule struct {
	keys []string
}

// Distinct rejects sequences holding two equal elements. With keys, elements
// are compared only on those (possibly nested) keys.
func Distinct(keys ...string) Rule {
	return distinctRule{keys: append([]string(nil), keys...)}
}

func (distinctRule) Kind() RuleKind { return KindDistinct }

func (r distinctRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	items, ok := asSequence(v)
	if !ok {
		return nil
	}

	for i := 1; i < len(items); i++ {
		for j := 0; j < i; j++ {
			if r.same(items[j], items[i]) {
				return fail(path, KindDistinct, "This list contains duplicate values", map[string]any{
					"index":       i,
					"duplicateOf": j,
					"keys":        append([]string(nil), r.keys...),
				})
			}
		}
	}
	return nil
}

func (r distinctRule) same(a, b any) bool {
	if len(r.keys) == 0 {
		return equal(a, b)
	}

	am, aok := asMapping(a)
	bm, bok := asMapping(b)
	if !aok || !bok {
		return false
	}

	for _, key := range r.keys {
		av, aPresent := Lookup(am, key)
		bv, bPresent := Lookup(bm, key)
		if aPresent != bPresent {
			return false
		}
		if aPresent && !equal(av, bv) {
			return false
		}
	}
	return true
}
