package validator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidationFailed matches every rule-reported failure via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownDataEntity is returned when a relational rule references an
	// entity the DataContext does not provide.
	ErrUnknownDataEntity = errors.New("data entity is not present in data context")

	// ErrUnknownPattern is returned by PatternByName for names outside the pattern table.
	ErrUnknownPattern = errors.New("unknown pattern")

	// ErrRulePanicked wraps a panic recovered from a rule.
	ErrRulePanicked = errors.New("rule panicked")
)

// ValidationError describes a single rule failure for one field.
type ValidationError struct {
	Field   string
	Rule    RuleKind
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrors is the aggregated failure of one validation call.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the first error reported for field.
func (ve ValidationErrors) Get(field string) (ValidationError, bool) {
	for _, err := range ve {
		if err.Field == field {
			return err, true
		}
	}
	return ValidationError{}, false
}

func (ve ValidationErrors) Messages(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Map groups messages by field, the shape used by the JSON error envelope.
func (ve ValidationErrors) Map() map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, err := range ve {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	return out
}

// ExtractValidationErrors returns the rule-reported failures carried by err,
// or nil when err is nil or a fault.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var many ValidationErrors
	if errors.As(err, &many) {
		return many
	}

	var one *ValidationError
	if errors.As(err, &one) {
		return ValidationErrors{*one}
	}

	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}

func fail(path string, kind RuleKind, message string, details map[string]any) error {
	return &ValidationError{
		Field:   path,
		Rule:    kind,
		Message: message,
		Details: details,
	}
}

// Reject returns a single-field failure for checks made outside a schema,
// e.g. a unique index violation caught by the database after validation
// passed.
func Reject(field string, rule RuleKind, message string, details map[string]any) error {
	return ValidationErrors{{Field: field, Rule: rule, Message: message, Details: details}}
}
