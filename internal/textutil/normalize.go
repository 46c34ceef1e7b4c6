package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey converts a title or filename into its comparison key.
//
// The input is NFKC-normalized, separator runs (whitespace, '-', '_', '.') are
// removed, the result is lowercased, and every rune that is not a letter, a
// number or a CJK ideograph is dropped. Empty and symbol-only input yields "".
func NormalizeKey(raw string) string {
	return normalize(raw, "")
}

// NormalizeKeySep is NormalizeKey with separator runs collapsed into sep
// instead of removed. Leading and trailing separators are trimmed.
func NormalizeKeySep(raw, sep string) string {
	return normalize(raw, sep)
}

func normalize(raw, sep string) string {
	if raw == "" {
		return ""
	}
	folded := strings.ToLower(norm.NFKC.String(raw))

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		switch {
		case isSeparator(r):
			pending = true
		case keepRune(r):
			if pending && sep != "" && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteRune(r)
		}
	}
	// Dropping separators can leave conjoining jamo adjacent; compose them
	// again so the key is a fixed point.
	return norm.NFKC.String(b.String())
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}

func keepRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Han, r)
}
