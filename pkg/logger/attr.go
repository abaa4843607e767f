package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// CustomerID records the customer identifier under the key "customer_id".
// If id is nil, it returns an empty Attr.
func CustomerID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("customer_id", id)
}

// EntityID records the identifier of the entity a use-case works on.
func EntityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("entity_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Stage records the validation stage name under the key "stage".
func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

// Field records a model field path under the key "field".
func Field(path string) slog.Attr {
	return slog.String("field", path)
}

// Rule records a validation rule kind under the key "rule".
func Rule(kind string) slog.Attr {
	return slog.String("rule", kind)
}

// Entity records a storage entity (table) name under the key "entity".
func Entity(name string) slog.Attr {
	return slog.String("entity", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
