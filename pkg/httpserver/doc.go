// Package httpserver runs the storefront HTTP API with graceful shutdown and
// health probes.
//
// Server.Run opens the listener first so bind errors surface as ErrStart,
// then serves until the context ends or SIGINT/SIGTERM arrives. Shutdown
// drains in-flight requests within the configured timeout and runs stop
// hooks afterwards, which is where the binary closes its database pools.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(pool.Close),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back the /health/live and
// /health/ready probes.
package httpserver
