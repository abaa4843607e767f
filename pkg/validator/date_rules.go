package validator

import (
	"context"
	"time"
)

// Accepted ISO 8601 layouts. time.Parse rejects out-of-range days such as
// April 31st, which gives calendar validity for free.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

type dateRule struct{}

// Date accepts calendar-valid ISO dates and datetimes.
func Date() Rule { return dateRule{} }

func (dateRule) Kind() RuleKind { return KindDate }

func (dateRule) Validate(_ context.Context, path string, model Model, _ DataContext) error {
	v, ok := Lookup(model, path)
	if absent(v, ok) {
		return nil
	}

	if s, isString := v.(string); isString && isISODate(s) {
		return nil
	}
	return fail(path, KindDate, "This value must be a valid date", nil)
}

func isISODate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ParseDate parses s with the layouts accepted by the date rule.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
