package validator

import "regexp"

// Field binds an ordered rule list to a field path.
type Field struct {
	Path  string
	Rules []Rule
}

// Schema is an ordered list of fields. Fields are validated concurrently, but
// failures are always reported in schema order.
type Schema []Field

// NewSchema returns a schema holding fields.
func NewSchema(fields ...Field) Schema {
	return Schema(nil).with(fields...)
}

// Field returns a copy of the schema with rules bound to path. An existing
// entry for path is replaced in place.
func (s Schema) Field(path string, rules RuleSet) Schema {
	return s.with(Field{Path: path, Rules: rules.List()})
}

// Prefix returns a copy of the schema with every path nested under prefix.
func (s Schema) Prefix(prefix string) Schema {
	out := make(Schema, len(s))
	for i, f := range s {
		out[i] = Field{Path: JoinPath(prefix, f.Path), Rules: f.Rules}
	}
	return out
}

// Paths lists field paths in schema order.
func (s Schema) Paths() []string {
	paths := make([]string, len(s))
	for i, f := range s {
		paths[i] = f.Path
	}
	return paths
}

func (s Schema) clone() Schema {
	return append(Schema(nil), s...)
}

func (s Schema) with(fields ...Field) Schema {
	out := s.clone()
	for _, f := range fields {
		f.Rules = append([]Rule(nil), f.Rules...)
		replaced := false
		for i := range out {
			if out[i].Path == f.Path {
				out[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, f)
		}
	}
	return out
}

// RuleSet accumulates the ordered rules of one field. It is a value: every
// method returns a new RuleSet and never touches the receiver, so partially
// built sets can be shared and extended safely.
type RuleSet struct {
	rules []Rule
}

// Rules starts a rule set, optionally seeded with rules.
func Rules(rules ...Rule) RuleSet {
	return RuleSet{}.With(rules...)
}

// With appends arbitrary rules.
func (s RuleSet) With(rules ...Rule) RuleSet {
	next := make([]Rule, 0, len(s.rules)+len(rules))
	next = append(next, s.rules...)
	for _, r := range rules {
		if r != nil {
			next = append(next, r)
		}
	}
	return RuleSet{rules: next}
}

// List materializes the ordered rules.
func (s RuleSet) List() []Rule {
	return append([]Rule(nil), s.rules...)
}

func (s RuleSet) Len() int { return len(s.rules) }

func (s RuleSet) Required() RuleSet { return s.With(Required()) }

// IsString appends the string rule.
func (s RuleSet) IsString() RuleSet { return s.With(String()) }

func (s RuleSet) Integer() RuleSet { return s.With(Integer()) }

func (s RuleSet) Length(min, max int) RuleSet { return s.With(Length(min, max)) }

func (s RuleSet) Regex(p Pattern) RuleSet { return s.With(Regex(p)) }

func (s RuleSet) In(values ...any) RuleSet { return s.With(In(values...)) }

func (s RuleSet) Min(bound float64) RuleSet { return s.With(Min(bound)) }

func (s RuleSet) Max(bound float64) RuleSet { return s.With(Max(bound)) }

func (s RuleSet) Date() RuleSet { return s.With(Date()) }

func (s RuleSet) Distinct(keys ...string) RuleSet { return s.With(Distinct(keys...)) }

// Matches is Regex with a caller-supplied expression.
func (s RuleSet) Matches(re *regexp.Regexp) RuleSet {
	return s.With(Regex(CustomPattern(re)))
}

func (s RuleSet) Custom(rule RuleKind, message string, predicate Predicate) RuleSet {
	return s.With(Custom(rule, message, predicate))
}

func (s RuleSet) Object(engine Engine, schema Schema) RuleSet {
	return s.With(Object(engine, schema))
}

func (s RuleSet) Array(engine Engine, rules RuleSet) RuleSet {
	return s.With(Array(engine, rules.rules...))
}

func (s RuleSet) Exists(entity string, props ...Prop) RuleSet {
	return s.With(Exists(entity, props...))
}

func (s RuleSet) Unique(entity string, props []Prop, ignore ...Prop) RuleSet {
	return s.With(Unique(entity, props, ignore...))
}
