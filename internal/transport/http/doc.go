// Package http implements the HTTP handlers of the movie dashboard. Handlers
// stay thin: they parse the selection from the query string or a JSON body,
// call the dashboard service, and render JSON, a file download or the HTML
// page. Errors are converted to RFC 7807 problem responses by the shared
// error handler.
//
// # Routes
//
//	GET  /                        HTML dashboard (all genres and ratings selected)
//	GET  /api/dashboard           dashboard JSON for ?genre=..&rating=..
//	POST /api/dashboard           dashboard JSON for a {"genres":[..],"ratings":[..]} body
//	GET  /api/options             genres and ratings of the base table
//	GET  /api/report              load and cleaning counts
//	GET  /api/export/{format}     filtered rows as csv or xlsx
//	POST /api/client-log          browser side error reports
//	GET  /api/health[/ready|/live]
//	GET  /api/version
//	GET  /metrics                 Prometheus scrape endpoint
//
// # Selection Parameters
//
// genre and rating may repeat or hold comma separated values. An absent
// parameter selects every value; "genre=" selects none, which renders the
// empty dashboard rather than an error.
package http
