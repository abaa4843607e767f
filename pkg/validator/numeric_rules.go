package validator

import "context"

type boundRule struct {
	kind  RuleKind
	bound float64
}

// Min checks value >= bound. Values that cannot be read as a number are skipped.
func Min(bound float64) Rule {
	return boundRule{kind: KindMin, bound: bound}
}

// Max checks value <= bound. Values that cannot be read as a number are skipped.
func Max(bound float64) Rule {
	return boundRule{kind: KindMax, bound: bound}
}

func (r boundRule) Kind() RuleKind { return r.kind }

func (r boundRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	n, ok := coerceNumber(v)
	if !ok {
		return nil
	}

	switch {
	case r.kind == KindMin && n < r.bound:
		return fail(path, KindMin, "This value is too small", map[string]any{"min": r.bound})
	case r.kind == KindMax && n > r.bound:
		return fail(path, KindMax, "This value is too large", map[string]any{"max": r.bound})
	}
	return nil
}
