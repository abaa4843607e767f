package validator

import "context"

// Prop pairs a model key with a record key for relational matching. The model
// key is resolved as a sibling of the validated field, so one declaration works
// for top-level fields and for fields inside array elements alike.
type Prop struct {
	ModelKey string
	DataKey  string
}

// Match is shorthand for Prop{ModelKey: modelKey, DataKey: dataKey}.
func Match(modelKey, dataKey string) Prop {
	return Prop{ModelKey: modelKey, DataKey: dataKey}
}

type existsRule struct {
	entity string
	props  []Prop
}

// Exists requires a record of entity matching every prop. Without props the
// field's own name is used on both sides.
func Exists(entity string, props ...Prop) Rule {
	return existsRule{entity: entity, props: append([]Prop(nil), props...)}
}

func (existsRule) Kind() RuleKind { return KindExists }

func (r existsRule) Validate(ctx context.Context, path string, model Model, data DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	records, err := data.Records(ctx, r.entity)
	if err != nil {
		return err
	}

	props := defaultProps(path, r.props)
	for _, rec := range records {
		if matches(path, model, rec, props) {
			return nil
		}
	}
	return fail(path, KindExists, "This value was not found", map[string]any{"dataEntity": r.entity})
}

type uniqueRule struct {
	entity string
	props  []Prop
	ignore []Prop
}

// Unique rejects the value when a record of entity matches every prop, unless
// that record also matches every ignore prop. The ignore props let an update
// keep its own value: Unique("customersByEmail", []Prop{Match("email", "email")}, Match("id", "id")).
func Unique(entity string, props []Prop, ignore ...Prop) Rule {
	return uniqueRule{
		entity: entity,
		props:  append([]Prop(nil), props...),
		ignore: append([]Prop(nil), ignore...),
	}
}

func (uniqueRule) Kind() RuleKind { return KindUnique }

func (r uniqueRule) Validate(ctx context.Context, path string, model Model, data DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	records, err := data.Records(ctx, r.entity)
	if err != nil {
		return err
	}

	props := defaultProps(path, r.props)
	for _, rec := range records {
		if !matches(path, model, rec, props) {
			continue
		}
		if len(r.ignore) > 0 && matches(path, model, rec, r.ignore) {
			continue
		}
		return fail(path, KindUnique, "This value is already in use", map[string]any{"dataEntity": r.entity})
	}
	return nil
}

func defaultProps(path string, props []Prop) []Prop {
	if len(props) > 0 {
		return props
	}
	name := baseName(path)
	return []Prop{{ModelKey: name, DataKey: name}}
}

func matches(path string, model Model, rec Record, props []Prop) bool {
	for _, p := range props {
		mv, ok := Lookup(model, SiblingPath(path, p.ModelKey))
		if !ok {
			return false
		}
		rv, ok := rec[p.DataKey]
		if !ok || !equal(mv, rv) {
			return false
		}
	}
	return true
}
