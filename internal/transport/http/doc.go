// Package http implements the HTTP handlers of the cutoff analytics
// service. Handlers are thin: they parse query parameters, call a service
// and render the result, leaving error mapping to the shared
// ErrorHandler so every failure is an RFC 7807 problem document.
//
// Two route sets serve the same payloads. The legacy paths (/data,
// /cutoff-dashboard-data, /cutoff/regional-data, /branch_data) return the
// bare payload the dashboard pages consume; the /api routes wrap it in a
// {"status", "data"} envelope and add the dataset summary, chart and
// workbook downloads.
//
// Handlers are tested with httptest against testify mocks of the service
// interfaces.
package http
