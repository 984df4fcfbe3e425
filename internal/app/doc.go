// Package app wires the movie dashboard together: it loads configuration,
// builds the base table from the movie file, creates the services and the
// chi router, and runs the HTTP server until SIGINT or SIGTERM.
//
// # Initialization Flow
//
//	1. Load configuration from YAML and MOVIEDASH_* environment variables
//	2. Initialize logging and OpenTelemetry
//	3. Load, clean and derive the movie table (fatal on failure)
//	4. Create the dashboard, health and live session services
//	5. Mount middleware and routes
//
// # Routing
//
// Every route shares RequestID, RealIP, tracing, request logging, panic
// recovery, security headers, CORS and rate limiting. The page and /api
// routes add a request timeout and compression; /ws and /metrics do not.
//
// # Graceful Shutdown
//
// Stop shuts the server down, closes live sessions through the server's
// shutdown hook and flushes telemetry. New never calls os.Exit; main decides
// the exit code.
package app
