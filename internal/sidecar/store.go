// Package sidecar reads and writes JSON metadata keyed by canonical id.
//
// Two layouts are accepted: a single JSON object mapping id to entry (the
// file written by WriteDescriptions), or a directory tree of {id}.json files.
// Entries expose a display title through "title" or "game_name".
package sidecar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
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

// Entry is one metadata record.
type Entry struct {
	ID       string
	Title    string
	TitleKey string
	Source   string
}

type rawEntry struct {
	Title    string `json:"title"`
	GameName string `json:"game_name"`
}

func (r rawEntry) title() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return strings.TrimSpace(r.GameName)
}

// Store indexes entries by id and by normalized title.
type Store struct {
	entries []Entry
	byID    map[string]int
	byTitle map[string][]string
	// Failures counts files or entries that could not be decoded.
	Failures int
}

// Load reads the store at path. A missing path is a configuration error.
func Load(path string, logger *slog.Logger) (*Store, error) {
	logger = logging.NewComponentLogger(logger, "sidecar")
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrConfiguration, "sidecar", "open", fmt.Sprintf("metadata %s not found", path), err)
		}
		return nil, faults.Wrap(faults.ErrConfiguration, "sidecar", "open", path, err)
	}

	s := newStore()
	if info.IsDir() {
		err = s.loadDir(path, logger)
	} else {
		err = s.loadFile(path)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("metadata indexed",
		logging.String("path", path),
		logging.Int("count", len(s.entries)),
		logging.Int("failures", s.Failures),
	)
	return s, nil
}

func newStore() *Store {
	return &Store{byID: map[string]int{}, byTitle: map[string][]string{}}
}

func (s *Store) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return faults.Wrap(faults.ErrConfiguration, "sidecar", "read", path, err)
	}
	data = bytes.TrimSpace(trimUTF8BOM(data))
	if len(data) == 0 {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return faults.Wrap(faults.ErrParse, "sidecar", "decode", path, err)
	}
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		var entry rawEntry
		if err := json.Unmarshal(raw[id], &entry); err != nil {
			s.Failures++
			continue
		}
		s.add(id, entry.title(), path)
	}
	return nil
}

func (s *Store) loadDir(root string, logger *slog.Logger) error {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return faults.Wrap(faults.ErrConfiguration, "sidecar", "walk", root, err)
	}
	sort.Strings(paths)
	for _, path := range paths {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		data, err := os.ReadFile(path)
		if err == nil {
			var entry rawEntry
			if err = json.Unmarshal(trimUTF8BOM(data), &entry); err == nil {
				s.add(id, entry.title(), path)
				continue
			}
		}
		s.Failures++
		logger.Warn("metadata file skipped", logging.String("path", path), logging.Error(err))
	}
	return nil
}

func (s *Store) add(id, title, source string) {
	id = strings.TrimSpace(id)
	if id == "" || title == "" {
		return
	}
	if _, dup := s.byID[id]; dup {
		return
	}
	key := textutil.NormalizeKey(title)
	s.byID[id] = len(s.entries)
	s.entries = append(s.entries, Entry{ID: id, Title: title, TitleKey: key, Source: source})
	if key != "" {
		s.byTitle[key] = append(s.byTitle[key], id)
	}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns every entry in load order.
func (s *Store) Entries() []Entry {
	if s == nil {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

// LookupTitle returns the distinct ids whose title normalizes to key.
func (s *Store) LookupTitle(key string) []string {
	if s == nil || key == "" {
		return nil
	}
	return append([]string(nil), s.byTitle[key]...)
}

func trimUTF8BOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
