// Package organizer turns match results into {id}{ext} files.
//
// Plan is pure and produces the same actions whether or not the run is a dry
// run. Apply performs copy, move or in-place rename per action while holding
// an exclusive lock on every destination directory. A source that no longer
// exists is skipped rather than failed, so repeating a move run is safe.
package organizer
