package textutil

import "testing"

func TestStripSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Title-01.png", "Title"},
		{"Title.png", "Title"},
		{"Ti-01tle.png", "Ti-01tle"},
		{"Title_02.jpg", "Title"},
		{"Title-01-02.png", "Title-01"},
		{"Title-123.png", "Title-123"},
		{"Title-1.png", "Title-1"},
		{"Title 01.png", "Title 01"},
		{"太鼓達人 紅版-02.png", "太鼓達人 紅版"},
		{"  Spaced Title -01.mp4", "Spaced Title"},
		{"NoExtension-05", "NoExtension"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripSuffix(tt.in); got != tt.want {
			t.Fatalf("StripSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripTitleSuffixKeepsDots(t *testing.T) {
	if got := StripTitleSuffix("Initial D Ver. 2"); got != "Initial D Ver. 2" {
		t.Fatalf("StripTitleSuffix() = %q", got)
	}
	if got := StripTitleSuffix("Initial D-03"); got != "Initial D" {
		t.Fatalf("StripTitleSuffix() = %q", got)
	}
}

func TestSuffixNumber(t *testing.T) {
	if got, ok := SuffixNumber("Game-01.png"); !ok || got != "01" {
		t.Fatalf("SuffixNumber() = %q, %v", got, ok)
	}
	if _, ok := SuffixNumber("Game.png"); ok {
		t.Fatalf("expected no suffix")
	}
}
