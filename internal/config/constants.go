package config

import "time"

// Application constants
const (
	// Application Info
	AppName = "tnea-analytics"

	// Server
	DefaultPort           = 5000
	DefaultRequestTimeout = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// File Paths (relative to the base directory)
	DefaultDataDir     = "data"
	DefaultDatasetFile = "Recent_Cleaned.csv"
	DefaultLogsDir     = "logs"
	DefaultExportDir   = "exports"

	// Analytics policy
	DefaultMinBranchTotal = 180
	DefaultTopBranches    = 8

	// Export file names
	WorkbookFileName = "tnea_analytics.xlsx"
)
