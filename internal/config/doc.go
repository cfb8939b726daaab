// Package config provides configuration management for datakit.
// It handles loading configuration from multiple sources, validation, and
// the conventional project directory layout.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern DATAKIT_* for namespacing:
//
//	DATAKIT_CATALOG_ROOT=/path/to/project
//	DATAKIT_CATALOG_SUBDIRS=raw,processed
//	DATAKIT_CATALOG_EXTENSIONS=.csv,.parquet
//	DATAKIT_LOGGING_LEVEL=debug
//	DATAKIT_PLOT_WIDTH=12
//
// # Path Management
//
// The Paths type replaces module-level path constants with an explicit value
// computed from the project root:
//
//	paths, err := config.NewPaths(".", "data")
//	raw := paths.RawDir
//	figure := paths.GetFigurePath("sales.png")
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
