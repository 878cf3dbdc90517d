// Package config provides configuration management for the analytics server.
// It loads settings from defaults, an optional YAML file and environment
// variables, validates them, and resolves the file system layout.
//
// # Configuration Sources
//
// Configuration is layered in the following order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file (config.yaml or TNEA_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables use the TNEA_ prefix followed by the section:
//
//	TNEA_SERVER_PORT=5000
//	TNEA_PATHS_DATASET_FILE=data/Recent_Cleaned.csv
//	TNEA_ANALYTICS_PRELOAD=true
//	TNEA_ANALYTICS_MIN_BRANCH_TOTAL=180
//	TNEA_LOGGING_LEVEL=debug
//	TNEA_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Paths
//
// Relative paths are resolved against Paths.BaseDir, which defaults to the
// working directory. See Resolve.
package config
