// Package logger builds *slog.Logger instances for the storefront services and
// provides attribute helpers so that keys stay consistent across packages.
//
// New applies functional options (format, level, environment presets, static
// attributes) and wraps the handler with LogHandlerDecorator, which adds
// attributes pulled from context.Context on every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "storefront"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.DebugContext(ctx, "validation stage rejected model",
//	    logger.Stage("relations"),
//	    logger.Component("validator"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
