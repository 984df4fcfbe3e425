// Package services holds the application logic between the HTTP handlers and
// the data pipeline.
//
// # Available Services
//
//	- DashboardService: renders the seven views for a selection, exports the
//	  filtered table, exposes the filter options and load report
//	- HealthService: health, readiness, liveness and version information
//
// The base table is built once before the services are created and is never
// written afterwards, so services need no locking. DashboardService collapses
// identical concurrent selections with singleflight.
//
// # Error Handling
//
// Services return sentinel errors (see errors.go) wrapped with %w; handlers
// map them to problem responses.
package services
