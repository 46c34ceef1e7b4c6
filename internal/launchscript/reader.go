package launchscript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"arcademedia/internal/textutil"
)

// FirstLine returns the first line of r decoded as UTF-8. A UTF-8 or UTF-16
// byte order mark selects the encoding; undecodable bytes are dropped.
func FirstLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(textutil.NewUTF8Reader(r))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	line := strings.TrimRight(scanner.Text(), "\r")
	return strings.ReplaceAll(line, "\uFFFD", ""), nil
}

// ReadFirstLine opens path and returns its first line.
func ReadFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	line, err := FirstLine(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return line, nil
}

// BaseName returns the last element of a launcher application path, splitting
// on both slash styles so Windows paths work on any host.
func BaseName(applicationPath string) string {
	p := strings.TrimSpace(applicationPath)
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// Dir locates launch scripts inside one directory.
type Dir struct {
	Path   string
	Marker Marker
}

// ScriptPath returns the script in d that corresponds to applicationPath, or
// "" when d is unset or the file does not exist.
func (d Dir) ScriptPath(applicationPath string) string {
	if strings.TrimSpace(d.Path) == "" {
		return ""
	}
	name := BaseName(applicationPath)
	if name == "" {
		return ""
	}
	candidate := filepath.Join(d.Path, name)
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return ""
	}
	return candidate
}

// Identifier reads the script for applicationPath and extracts its identifier.
// found is false when there is no script; err is set when a script exists but
// cannot be read or carries no marker.
func (d Dir) Identifier(applicationPath string) (id string, found bool, err error) {
	path := d.ScriptPath(applicationPath)
	if path == "" {
		return "", false, nil
	}
	line, err := ReadFirstLine(path)
	if err != nil {
		return "", true, err
	}
	id, ok := d.Marker.Extract(line)
	if !ok {
		return "", true, fmt.Errorf("%s: no %q marker on first line", filepath.Base(path), d.marker())
	}
	return id, true, nil
}

// Scripts lists the *.bat files in d sorted by name.
func (d Dir) Scripts() ([]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".bat") {
			continue
		}
		out = append(out, filepath.Join(d.Path, entry.Name()))
	}
	return out, nil
}

func (d Dir) marker() string {
	if d.Marker.Token == "" {
		return DefaultMarker
	}
	return d.Marker.Token
}
