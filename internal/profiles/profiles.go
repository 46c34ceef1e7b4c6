// Package profiles indexes per-game emulator profile files (TeknoParrot
// UserProfiles). Each file is named after its canonical id and carries a
// GamePath element whose folder names the game.
package profiles

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arcademedia/internal/faults"
	"arcademedia/internal/logging"
	"arcademedia/internal/textutil"
)

// Profile is one parsed profile file.
type Profile struct {
	ID       string
	Path     string
	GamePath string
	GameName string
	TitleKey string
}

// Catalog holds every readable profile found under the configured
// directories, in directory order then path order.
type Catalog struct {
	profiles []Profile
	byID     map[string]int
	byTitle  map[string][]int
	// Failures counts profile files that could not be parsed.
	Failures int
	// Missing lists configured directories that do not exist.
	Missing []string
}

// Load walks dirs recursively for *.xml profiles. Unparseable files are
// counted and skipped; when the same id appears twice the first file wins.
func Load(dirs []string, logger *slog.Logger) (*Catalog, error) {
	logger = logging.NewComponentLogger(logger, "profiles")
	cat := &Catalog{byID: map[string]int{}, byTitle: map[string][]int{}}

	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			cat.Missing = append(cat.Missing, dir)
			logger.Warn("profile directory unavailable", logging.String("dir", dir))
			continue
		}
		paths, err := collect(dir)
		if err != nil {
			logger.Warn("profile directory walk failed", logging.String("dir", dir), logging.Error(err))
		}
		for _, path := range paths {
			profile, err := ReadFile(path)
			if err != nil {
				cat.Failures++
				logger.Warn("profile skipped", logging.String("path", path), logging.Error(err))
				continue
			}
			cat.add(profile)
		}
	}
	logger.Debug("profiles indexed",
		logging.Int("count", len(cat.profiles)),
		logging.Int("failures", cat.Failures),
	)
	return cat, nil
}

// Require converts an empty catalog built from missing directories into a
// configuration error.
func (c *Catalog) Require(dirs []string) error {
	if c.Len() > 0 || len(c.Missing) < len(nonEmpty(dirs)) {
		return nil
	}
	return faults.Wrap(faults.ErrConfiguration, "profiles", "load",
		fmt.Sprintf("no profile directory found (%s)", strings.Join(c.Missing, ", ")), nil)
}

func (c *Catalog) add(p Profile) {
	if _, dup := c.byID[p.ID]; dup {
		return
	}
	idx := len(c.profiles)
	c.profiles = append(c.profiles, p)
	c.byID[p.ID] = idx
	if p.TitleKey != "" {
		c.byTitle[p.TitleKey] = append(c.byTitle[p.TitleKey], idx)
	}
}

// Len returns the number of indexed profiles.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.profiles)
}

// All returns the indexed profiles in load order.
func (c *Catalog) All() []Profile {
	if c == nil {
		return nil
	}
	return append([]Profile(nil), c.profiles...)
}

// LookupTitle returns the ids of profiles whose game folder normalizes to key.
func (c *Catalog) LookupTitle(key string) []string {
	if c == nil || key == "" {
		return nil
	}
	indexes := c.byTitle[key]
	ids := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		ids = append(ids, c.profiles[idx].ID)
	}
	return ids
}

// ReadFile parses a single profile file.
func ReadFile(path string) (Profile, error) {
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.TrimSpace(id) == "" {
		return Profile{}, fmt.Errorf("%w: empty profile name", faults.ErrParse)
	}
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()

	gamePath, err := FindGamePath(f)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %s: %w", faults.ErrParse, filepath.Base(path), err)
	}
	name := GameName(gamePath)
	return Profile{
		ID:       id,
		Path:     path,
		GamePath: gamePath,
		GameName: name,
		TitleKey: textutil.NormalizeKey(name),
	}, nil
}

// FindGamePath returns the trimmed text of the first GamePath element at any
// depth, or "" when the document has none.
func FindGamePath(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(textutil.NewUTF8Reader(r))
	decoder.CharsetReader = textutil.PassthroughCharsetReader
	inGamePath := false
	var text strings.Builder
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "GamePath" {
				inGamePath = true
				text.Reset()
			}
		case xml.CharData:
			if inGamePath {
				text.Write(t)
			}
		case xml.EndElement:
			if inGamePath && t.Name.Local == "GamePath" {
				if value := strings.TrimSpace(text.String()); value != "" {
					return value, nil
				}
				inGamePath = false
			}
		}
	}
}

// GameName returns the last path segment that is not an .exe or .bat file,
// accepting both slash styles.
func GameName(gamePath string) string {
	parts := strings.FieldsFunc(gamePath, func(r rune) bool { return r == '/' || r == '\\' })
	for i := len(parts) - 1; i >= 0; i-- {
		part := strings.TrimSpace(parts[i])
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		if strings.HasSuffix(lower, ".exe") || strings.HasSuffix(lower, ".bat") {
			continue
		}
		return part
	}
	return ""
}

func collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".xml") {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)
	return paths, err
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
