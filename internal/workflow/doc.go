// Package workflow runs configured reconciliation jobs end to end.
//
// A job loads its catalog (LaunchBox database, profile directory or sidecar
// metadata), builds the identity resolver from whatever context is
// configured, reconciles the records against the job's asset roots, plans the
// organizer actions and, unless the run is a dry run, applies them. Catalogs
// are loaded once per Runner and shared by every job it runs.
//
// Describe produces the LaunchBox description export that doubles as a
// sidecar metadata store.
package workflow
