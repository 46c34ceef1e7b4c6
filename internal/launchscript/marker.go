package launchscript

import "strings"

// Default marker tokens.
const (
	DefaultMarker    = "--profile="
	DefaultExtension = ".xml"
)

// Marker describes where an identifier sits inside a script line. Matching is
// ASCII case-insensitive; the extracted identifier keeps its original case.
type Marker struct {
	Token     string
	Extension string
}

// DefaultMarkerSpec returns the TeknoParrot marker.
func DefaultMarkerSpec() Marker {
	return Marker{Token: DefaultMarker, Extension: DefaultExtension}
}

// Extract returns the trimmed text strictly between the marker token and the
// next extension token. It reports false when either token is missing or the
// identifier is empty.
func (m Marker) Extract(line string) (string, bool) {
	token := m.Token
	if token == "" {
		token = DefaultMarker
	}
	ext := m.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	idx := indexFold(line, token)
	if idx < 0 {
		return "", false
	}
	start := idx + len(token)
	end := indexFold(line[start:], ext)
	if end <= 0 {
		return "", false
	}
	id := strings.TrimSpace(line[start : start+end])
	if id == "" {
		return "", false
	}
	return id, true
}

// indexFold is strings.Index with ASCII case folding. Byte offsets stay valid
// for the original string, which strings.ToLower does not guarantee.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
