// Package config provides centralized configuration management for the
// insight toolkit. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern INSIGHT_* for namespacing:
//
//	INSIGHT_SERVER_PORT=8080
//	INSIGHT_LOGGING_LEVEL=info
//	INSIGHT_PATHS_DATA_DIR=data
//	INSIGHT_DOWNLOADER_PAGE_SIZE=50000
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	csvPath := paths.GetDownloadPath("dog_licenses.csv")
//	reportPath := paths.GetReportPath("salary_summary.xlsx")
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
