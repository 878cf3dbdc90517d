// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a capturing slog handler and a
// deterministic allotment dataset (CSV fixtures) used by the service,
// transport and exporter tests:
//
//	logger, logs := testutil.NewTestLogger(t)
//	path := testutil.WriteSampleDataset(t, t.TempDir())
//
// Nothing here carries business logic.
package shared
