package validator

import (
	"context"
	"strconv"
)

type objectRule struct {
	engine Engine
	schema Schema
}

// Object requires a mapping and validates schema against it, with every nested
// path prefixed by the current one. Failures are reported at the full path,
// e.g. "shipping.address.city".
func Object(engine Engine, schema Schema) Rule {
	return objectRule{engine: engine, schema: schema.clone()}
}

func (objectRule) Kind() RuleKind { return KindObject }

func (r objectRule) Validate(ctx context.Context, path string, model Model, data DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	if _, isMap := asMapping(v); !isMap {
		return fail(path, KindObject, "This value must be an object", nil)
	}
	return r.engine.Validate(ctx, r.schema.Prefix(path), model, data)
}

type arrayRule struct {
	engine Engine
	rules  []Rule
}

// Array requires a sequence and applies rules to every element at
// "<path>.<index>". Elements are validated concurrently.
func Array(engine Engine, rules ...Rule) Rule {
	return arrayRule{engine: engine, rules: append([]Rule(nil), rules...)}
}

func (arrayRule) Kind() RuleKind { return KindArray }

func (r arrayRule) Validate(ctx context.Context, path string, model Model, data DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	items, isSeq := asSequence(v)
	if !isSeq {
		return fail(path, KindArray, "This value must be an array", nil)
	}
	if len(items) == 0 || len(r.rules) == 0 {
		return nil
	}

	schema := make(Schema, len(items))
	for i := range items {
		schema[i] = Field{Path: JoinPath(path, strconv.Itoa(i)), Rules: r.rules}
	}
	return r.engine.Validate(ctx, schema, model, data)
}
