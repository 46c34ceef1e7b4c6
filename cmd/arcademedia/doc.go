// Command arcademedia reconciles arcade game assets with canonical game ids.
//
// Usage:
//
//	arcademedia run [job...] [--dry-run] [--min-score 0.3] [--format table|json|yaml]
//	arcademedia describe [--output path]
//	arcademedia jobs
//	arcademedia config init|validate
//
// Configuration is read from --config, ~/.config/arcademedia/config.toml or
// ./arcademedia.toml, in that order. A .env file in the working directory is
// loaded first.
package main
