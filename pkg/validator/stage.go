package validator

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// PrepareFunc builds the schema and data of a stage. It runs only after all
// previous stages passed, which makes it the place for repository lookups.
type PrepareFunc func(ctx context.Context) (Schema, DataContext, error)

// Stage is one pass of a staged validation.
type Stage struct {
	Name    string
	Prepare PrepareFunc
}

// Pure is a stage that needs no external data.
func Pure(name string, schema Schema) Stage {
	return Stage{
		Name: name,
		Prepare: func(context.Context) (Schema, DataContext, error) {
			return schema, DataContext{}, nil
		},
	}
}

// WithData is a stage validated against data. Lazy sources in data are
// resolved only when a rule of this stage reads them.
func WithData(name string, schema Schema, data DataContext) Stage {
	return Stage{
		Name: name,
		Prepare: func(context.Context) (Schema, DataContext, error) {
			return schema, data, nil
		},
	}
}

// Staged validates model stage by stage and stops at the first stage that
// fails or faults. Errors are returned exactly as Validate or Prepare produced
// them.
func (v *Validator) Staged(ctx context.Context, model Model, stages ...Stage) error {
	for _, stage := range stages {
		schema, data, err := stage.Prepare(ctx)
		if err != nil {
			v.logger.ErrorContext(ctx, "failed to prepare validation stage",
				logger.Stage(stage.Name),
				logger.Error(err),
				logger.Component("validator"),
			)
			return err
		}

		if err := v.Validate(ctx, schema, model, data); err != nil {
			if failures := ExtractValidationErrors(err); failures != nil {
				v.logger.DebugContext(ctx, "validation stage rejected model",
					logger.Stage(stage.Name),
					slog.Any("fields", failures.Fields()),
					logger.Component("validator"),
				)
			} else {
				v.logger.ErrorContext(ctx, "validation stage faulted",
					logger.Stage(stage.Name),
					logger.Error(err),
					logger.Component("validator"),
				)
			}
			return err
		}
	}
	return nil
}
