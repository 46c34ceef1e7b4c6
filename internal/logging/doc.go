// Package logging builds the slog loggers used by the CLI and the matching
// pipeline.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// context helpers that tag every line of a run with its run id and job name.
// NewNop is provided for tests and wiring code that has no logger.
package logging
