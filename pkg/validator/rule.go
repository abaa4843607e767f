package validator

import "context"

// Model is the request data being validated. Validation never mutates it.
type Model = map[string]any

// Record is a single reference row supplied through a DataContext.
type Record = map[string]any

// RuleKind names a rule family and is reported in every ValidationError.
type RuleKind string

const (
	KindRequired RuleKind = "required"
	KindString   RuleKind = "string"
	KindInteger  RuleKind = "integer"
	KindLength   RuleKind = "length"
	KindRegex    RuleKind = "regex"
	KindIn       RuleKind = "in"
	KindMin      RuleKind = "min"
	KindMax      RuleKind = "max"
	KindDate     RuleKind = "date"
	KindDistinct RuleKind = "distinct"
	KindCustom   RuleKind = "custom"
	KindObject   RuleKind = "object"
	KindArray    RuleKind = "array"
	KindExists   RuleKind = "exists"
	KindUnique   RuleKind = "unique"
)

// Rule validates the value found at path inside model.
//
// Validate returns nil on success, a *ValidationError or ValidationErrors when
// the value is rejected, and any other error when the rule itself could not be
// evaluated.
type Rule interface {
	Kind() RuleKind
	Validate(ctx context.Context, path string, model Model, data DataContext) error
}

// Engine validates a whole schema. Rules that recurse into nested values
// receive it at construction.
type Engine interface {
	Validate(ctx context.Context, schema Schema, model Model, data DataContext) error
}
