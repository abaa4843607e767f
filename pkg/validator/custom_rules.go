package validator

import "context"

// Predicate is a caller-supplied check, typically closing over records the
// use-case already fetched. A returned error is a fault, not a failure.
type Predicate func(ctx context.Context) (bool, error)

type customRule struct {
	rule      RuleKind
	message   string
	predicate Predicate
}

// Custom fails with message, reported under rule, unless predicate returns true.
func Custom(rule RuleKind, message string, predicate Predicate) Rule {
	return customRule{rule: rule, message: message, predicate: predicate}
}

func (customRule) Kind() RuleKind { return KindCustom }

func (r customRule) Validate(ctx context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	passed, err := r.predicate(ctx)
	if err != nil {
		return err
	}
	if !passed {
		return fail(path, r.rule, r.message, nil)
	}
	return nil
}
