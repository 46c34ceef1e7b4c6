// Package assets discovers artwork and video files under ordered asset roots
// and indexes them by comparison key.
//
// Every file is indexed twice: by the key of its base name (exact lookups) and
// by the key of its base name with the numbered suffix removed (prefix-family
// lookups). Candidates are ordered by root precedence, then "-01" variants,
// then discovery order; the same order breaks ties during fuzzy matching.
package assets
