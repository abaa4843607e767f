// Package requestid correlates log records of one HTTP request.
//
// Middleware attaches an id to every request and LoggerExtractor injects it
// into slog records as "request_id":
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
