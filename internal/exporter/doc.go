// Package exporter renders the aggregate tables for offline use.
//
// A Report bundles the four payloads; Report.Tables flattens them into
// named tables which can be written as CSV files (CSVWriter), as one
// worksheet per table in an XLSX workbook (WriteWorkbook), or drawn as
// PNG charts (RenderChart).
//
// Example usage:
//
//	report := &exporter.Report{Insights: insights, Regional: regional}
//	if _, err := exporter.RenderChart(w, exporter.ChartZoneTrend, report); err != nil {
//		return err
//	}
package exporter
