package textutil

import (
	"math"
	"testing"
)

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "abc", "abc", 1},
		{"one of two", "ab", "ac", 0.5},
		{"disjoint", "abc", "xyz", 0},
		{"empty left", "", "abc", 0},
		{"both empty", "", "", 0},
		{"cjk runes", "太鼓達人", "太鼓", 2.0 * 2 / 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SequenceRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("SequenceRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceRatioFuzzyCover(t *testing.T) {
	got := SequenceRatio(NormalizeKey("Time Crisis 5"), NormalizeKey("timecrisis5_cover"))
	want := 2.0 * 11 / (11 + 16)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"WMMT6RR":   "WMMT6RR",
		" a/b:c ":   "a-b-c",
		"what?<>|":  "what",
		"..":        "",
		"Sega\\Rev": "Sega-Rev",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
