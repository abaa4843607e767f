package validator

import "context"

type requiredRule struct{}

// Required rejects absent and nil values. Empty strings, zero and false pass.
func Required() Rule { return requiredRule{} }

func (requiredRule) Kind() RuleKind { return KindRequired }

func (requiredRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	if v, ok := Lookup(model, path); absent(v, ok) {
		return fail(path, KindRequired, "This field is required", nil)
	}
	return nil
}

type stringRule struct{}

// String accepts only string values.
func String() Rule { return stringRule{} }

func (stringRule) Kind() RuleKind { return KindString }

func (stringRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}
	if _, isString := v.(string); !isString {
		return fail(path, KindString, "This value must be a string", nil)
	}
	return nil
}

type integerRule struct{}

// Integer accepts integer numbers, including integral float64 values decoded from JSON.
func Integer() Rule { return integerRule{} }

func (integerRule) Kind() RuleKind { return KindInteger }

func (integerRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}
	if !isInteger(v) {
		return fail(path, KindInteger, "This value must be an integer", nil)
	}
	return nil
}
