// Package middleware holds the HTTP middleware chain of the dashboard server:
// request IDs, structured request logging, OpenTelemetry instrumentation,
// rate limiting, request timeouts, CORS, security headers, and JSON body
// validation.
//
// Recommended order:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.RealIP)
//	r.Use(otelMiddleware.Handler)
//	r.Use(middleware.StructuredLogger(logger))
//	r.Use(errorHandler.Recoverer)
//	r.Use(middleware.Timeout(cfg.Server.RequestTimeout, logger))
//
// Errors are written as RFC 7807 problem documents by internal/errors.
package middleware
