package textutil

import "github.com/pmezard/go-difflib/difflib"

// SequenceRatio returns the matching-block similarity of two strings in [0, 1]:
// twice the number of matched runes divided by the total rune count.
// Two empty strings score 0 so an empty key never matches.
func SequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
