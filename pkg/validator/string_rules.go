package validator

import (
	"context"
	"unicode/utf8"
)

type lengthRule struct {
	min, max int
}

// Length checks that a string (counted in runes) or a sequence has between
// min and max elements inclusive. Other value types are ignored.
func Length(min, max int) Rule {
	return lengthRule{min: min, max: max}
}

func (lengthRule) Kind() RuleKind { return KindLength }

func (r lengthRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	var n int
	if s, isString := v.(string); isString {
		n = utf8.RuneCountInString(s)
	} else if seq, isSeq := asSequence(v); isSeq {
		n = len(seq)
	} else {
		return nil
	}

	if n < r.min || n > r.max {
		return fail(path, KindLength, "This value has an invalid length", map[string]any{
			"min":    r.min,
			"max":    r.max,
			"length": n,
		})
	}
	return nil
}

type regexRule struct {
	pattern Pattern
}

// Regex checks that a string value matches pattern. Non-string values fail.
func Regex(pattern Pattern) Rule {
	return regexRule{pattern: pattern}
}

func (regexRule) Kind() RuleKind { return KindRegex }

func (r regexRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	s, isString := v.(string)
	if !isString || !r.pattern.Match(s) {
		return fail(path, KindRegex, "This value has an invalid format", map[string]any{
			"pattern": r.pattern.Name(),
		})
	}
	return nil
}
