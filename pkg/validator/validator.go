package validator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Validator is the orchestrator that evaluates schemas. It is safe for
// concurrent use and is usually created once and injected wherever a use-case
// or a nested rule needs it.
type Validator struct {
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate evaluates every field of schema against model.
//
// Fields run concurrently; the rules of one field run in order and the first
// failing rule ends that field. When any field failed, the returned error is a
// ValidationErrors holding the failures in schema order. When a rule faults,
// the remaining work is cancelled and the fault is returned unchanged.
func (v *Validator) Validate(ctx context.Context, schema Schema, model Model, data DataContext) error {
	if len(schema) == 0 {
		return nil
	}

	results := make([]ValidationErrors, len(schema))
	g, gctx := errgroup.WithContext(ctx)
	for i, field := range schema {
		g.Go(func() error {
			errs, err := validateField(gctx, field, model, data)
			if err != nil {
				return err
			}
			results[i] = errs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failures ValidationErrors
	for _, errs := range results {
		failures = append(failures, errs...)
	}
	if failures.IsEmpty() {
		return nil
	}
	return failures
}

func validateField(ctx context.Context, field Field, model Model, data DataContext) (errs ValidationErrors, err error) {
	defer func() {
		if r := recover(); r != nil {
			errs, err = nil, fmt.Errorf("%w: field %q: %v", ErrRulePanicked, field.Path, r)
		}
	}()

	for _, rule := range field.Rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ruleErr := rule.Validate(ctx, field.Path, model, data)
		if ruleErr == nil {
			continue
		}
		if failures := ExtractValidationErrors(ruleErr); failures != nil {
			return failures, nil
		}
		return nil, ruleErr
	}
	return nil, nil
}
