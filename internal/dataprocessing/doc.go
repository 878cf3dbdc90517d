// Package dataprocessing is the aggregation engine for the admission
// allotment dataset. It turns a flat table of allotment records into the
// grouped and year-pivoted summary tables served by the dashboard.
//
// # Architecture
//
// The package is organized into five stages, all operating on the cleaned
// record set produced by the loader:
//
// 1. Loader: reads CSV or XLSX rows, normalizes headers and filters rows
// 2. Categorical aggregators: one-key counts and means (round, year, community)
// 3. Year-pivot builder: one row per entity with one value per year
// 4. Entity derivations: college, branch, district, zone and area-type trends
// 5. Branch popularity: allotment volume per branch and its growth
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger)
//	ds, err := loader.Load(ctx, "data/Recent_Cleaned.csv")
//	if err != nil {
//	    return err
//	}
//	regional, err := dataprocessing.BuildRegional(ds)
//
// # Sequential builds
//
// BuildDashboard, BuildInsights, BuildRegional and BuildBranchPopularity
// run a payload's stages one after another on the calling goroutine. They
// are the reference path for tools and tests. The server composes the same
// Stage lists itself so it can run them in parallel, trace each stage and
// memoize the result; both paths produce identical payloads.
//
// # Data Flow
//
//	CSV/XLSX → Loader → Dataset → Stages → domain payloads → JSON
//
// # Missing values
//
// A year with no records for an entity is carried as a null value, never
// as zero. Percent changes over a zero or missing base are null, except in
// the district table where a zero base with a non-zero end yields
// InfiniteGrowth.
//
// # Error Handling
//
// Rows with an unparseable score or a year outside ValidYears are dropped
// and counted in Stats. A payload whose required columns are absent from
// the source header fails with *MissingColumnsError.
//
// # Concurrency
//
// A Dataset is never mutated after loading. Every stage is a pure function
// over its records, so stages may run in parallel.
package dataprocessing
