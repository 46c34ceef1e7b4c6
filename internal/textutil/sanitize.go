package textutil

import "strings"

var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a canonical id safe to use as a file stem.
// Path separators, colons and asterisks become dashes and other reserved
// characters are removed. Names that reduce to "." or ".." become "".
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(name)))
	if name == "." || name == ".." {
		return ""
	}
	return name
}
