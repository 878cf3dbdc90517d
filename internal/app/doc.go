// Package app wires configuration, logging, telemetry, services and the
// HTTP router into a runnable application.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, the YAML file and TNEA_* variables
//  2. Resolve and create the working directories
//  3. Initialize logging, tracing and the Prometheus meter
//  4. Create the dataset, analytics, export and health services
//  5. Mount the legacy dashboard routes, /api and /metrics
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run stops on SIGINT, SIGTERM or a listener failure. In-flight requests
// finish within the shutdown timeout, then telemetry is flushed and the
// log file closed.
package app
