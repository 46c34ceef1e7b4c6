// Package preflight provides readiness checks for the filesystem paths a
// configuration depends on.
//
// The CLI "arcademedia config validate" command prints every result. Checks
// are gated by what the configured jobs actually use: the LaunchBox database
// is only checked when a job reads the launchbox catalog, and so on.
package preflight
