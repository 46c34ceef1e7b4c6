package textutil

import (
	"path/filepath"
	"strings"
)

// StripSuffix removes the extension from a filename, then a single trailing
// "-NN" or "_NN" disambiguation suffix, then surrounding whitespace.
//
//	StripSuffix("Title-01.png")   == "Title"
//	StripSuffix("Ti-01tle.png")   == "Ti-01tle"
//	StripSuffix("Title-01-02.png") == "Title-01"
func StripSuffix(filename string) string {
	return StripTitleSuffix(trimExt(filename))
}

// StripTitleSuffix is StripSuffix for strings that carry no extension.
func StripTitleSuffix(title string) string {
	if stem, _, ok := splitSuffix(title); ok {
		return strings.TrimSpace(stem)
	}
	return strings.TrimSpace(title)
}

// SuffixNumber reports the two-digit disambiguation suffix of a filename.
func SuffixNumber(filename string) (string, bool) {
	_, digits, ok := splitSuffix(trimExt(filename))
	return digits, ok
}

func trimExt(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func splitSuffix(s string) (stem, digits string, ok bool) {
	s = strings.TrimRight(s, " \t")
	n := len(s)
	if n < 3 {
		return s, "", false
	}
	if !isASCIIDigit(s[n-1]) || !isASCIIDigit(s[n-2]) {
		return s, "", false
	}
	if s[n-3] != '-' && s[n-3] != '_' {
		return s, "", false
	}
	return s[:n-3], s[n-2:], true
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
