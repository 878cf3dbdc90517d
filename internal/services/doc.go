// Package services holds the application layer between the HTTP handlers
// and the aggregation engine.
//
// DatasetService owns the single read-only dataset snapshot. It loads the
// file on first use (or at startup when preloading is on) and never
// replaces a snapshot once held; a failed load is returned wrapped in
// ErrDatasetUnavailable and retried on the next call.
//
// AnalyticsService turns a snapshot into the JSON payloads. Each payload is
// a set of independent aggregation stages that run concurrently in an
// errgroup, one span per stage. When payload caching is enabled results
// are memoized per snapshot version for the life of the process.
//
// HealthService reports liveness, readiness and version information.
package services
