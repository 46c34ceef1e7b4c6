package textutil

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewUTF8Reader wraps r so it yields UTF-8. A UTF-8 or UTF-16 byte order mark
// selects the source encoding and is removed; without one the input is
// treated as UTF-8 and invalid sequences become U+FFFD.
func NewUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// PassthroughCharsetReader satisfies xml.Decoder.CharsetReader for documents
// already transcoded by NewUTF8Reader whose declaration still names UTF-16.
func PassthroughCharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-16", "utf-16le", "utf-16be", "unicode":
		return input, nil
	}
	return nil, &UnsupportedCharsetError{Label: label}
}

// UnsupportedCharsetError reports an XML declaration naming an encoding the
// readers cannot handle.
type UnsupportedCharsetError struct {
	Label string
}

func (e *UnsupportedCharsetError) Error() string {
	return "unsupported charset " + e.Label
}
