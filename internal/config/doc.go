// Package config loads, normalizes, and validates arcademedia configuration.
//
// It supplies defaults that reproduce the classic TeknoParrot/LaunchBox
// layout, resolves relative paths against paths.base_dir, reads TOML files,
// and honours the ARCADEMEDIA_BASE_DIR and ARCADEMEDIA_LOG_LEVEL environment
// overrides. Jobs describe one reconciliation pass each: which catalog
// supplies the records, which asset roots are searched, and where matched
// assets are written.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical enum values, and clear validation errors.
package config
