package assets

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arcademedia/internal/logging"
	"arcademedia/internal/textutil"
)

// Root is one asset directory. Earlier roots take precedence.
type Root struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

// Candidate is one discovered asset file. Candidates are never modified
// after Scan returns.
type Candidate struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Ext       string `json:"ext"`
	Key       string `json:"key"`
	PrefixKey string `json:"prefix_key"`
	Suffix    string `json:"suffix,omitempty"`
	Root      int    `json:"root"`
	Seq       int    `json:"seq"`
}

// Index is the lookup built by Scan.
type Index struct {
	all    []Candidate
	exact  map[string][]int
	prefix map[string][]int
	// Missing lists roots that could not be read.
	Missing []string
}

// Scanner walks asset roots.
type Scanner struct {
	Extensions ExtensionSet
	// Exclude lists directories never descended into, typically the
	// destination of a job whose roots contain it.
	Exclude []string
	Logger  *slog.Logger
}

// Scan indexes every allowed file under roots. Unreadable roots and
// subdirectories are logged and skipped.
func (s Scanner) Scan(roots []Root) *Index {
	logger := logging.NewComponentLogger(s.Logger, "assets")
	exts := s.Extensions
	if len(exts) == 0 {
		exts = ImageExtensions()
	}
	excluded := cleanAll(s.Exclude)

	idx := &Index{exact: map[string][]int{}, prefix: map[string][]int{}}
	seq := 0
	for rootIdx, root := range roots {
		files, err := listFiles(root, excluded, logger)
		if err != nil {
			idx.Missing = append(idx.Missing, root.Path)
			logger.Warn("asset root unreadable",
				logging.String("root", root.Path),
				logging.Error(err),
			)
			continue
		}
		for _, path := range files {
			name := filepath.Base(path)
			ext := filepath.Ext(name)
			if !exts.Has(ext) {
				continue
			}
			suffix, _ := textutil.SuffixNumber(name)
			idx.all = append(idx.all, Candidate{
				Path:      path,
				Name:      name,
				Ext:       strings.ToLower(ext),
				Key:       textutil.NormalizeKey(strings.TrimSuffix(name, ext)),
				PrefixKey: textutil.NormalizeKey(textutil.StripSuffix(name)),
				Suffix:    suffix,
				Root:      rootIdx,
				Seq:       seq,
			})
			seq++
		}
	}

	sort.SliceStable(idx.all, func(i, j int) bool { return less(idx.all[i], idx.all[j]) })
	for i, c := range idx.all {
		if c.Key != "" {
			idx.exact[c.Key] = append(idx.exact[c.Key], i)
		}
		if c.PrefixKey != "" {
			idx.prefix[c.PrefixKey] = append(idx.prefix[c.PrefixKey], i)
		}
	}

	logger.Debug("asset roots indexed",
		logging.Int("roots", len(roots)),
		logging.Int("candidates", len(idx.all)),
		logging.Int("missing", len(idx.Missing)),
	)
	return idx
}

// less orders candidates by root, then "-01" first, then discovery order.
func less(a, b Candidate) bool {
	if a.Root != b.Root {
		return a.Root < b.Root
	}
	if ar, br := suffixRank(a), suffixRank(b); ar != br {
		return ar < br
	}
	return a.Seq < b.Seq
}

func suffixRank(c Candidate) int {
	if c.Suffix == "01" {
		return 0
	}
	return 1
}

// Len returns the number of candidates.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.all)
}

// All returns every candidate in precedence order.
func (x *Index) All() []Candidate {
	if x == nil {
		return nil
	}
	return append([]Candidate(nil), x.all...)
}

// Exact returns the candidates whose base-name key equals key.
func (x *Index) Exact(key string) []Candidate {
	return x.lookup(x.exactMap(), key)
}

// Prefix returns the candidates whose suffix-stripped key equals key.
func (x *Index) Prefix(key string) []Candidate {
	return x.lookup(x.prefixMap(), key)
}

func (x *Index) exactMap() map[string][]int {
	if x == nil {
		return nil
	}
	return x.exact
}

func (x *Index) prefixMap() map[string][]int {
	if x == nil {
		return nil
	}
	return x.prefix
}

func (x *Index) lookup(m map[string][]int, key string) []Candidate {
	if key == "" || m == nil {
		return nil
	}
	positions := m[key]
	out := make([]Candidate, 0, len(positions))
	for _, pos := range positions {
		out = append(out, x.all[pos])
	}
	return out
}

// AllMissing reports whether none of the roots could be read.
func (x *Index) AllMissing(roots []Root) bool {
	return len(roots) == 0 || (x != nil && len(x.Missing) >= len(roots))
}

func listFiles(root Root, excluded []string, logger *slog.Logger) ([]string, error) {
	base := filepath.Clean(root.Path)
	info, err := os.Stat(base)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "scan", Path: base, Err: errors.New("not a directory")}
	}

	if !root.Recursive {
		entries, err := os.ReadDir(base)
		if err != nil {
			return nil, err
		}
		files := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				files = append(files, filepath.Join(base, entry.Name()))
			}
		}
		return files, nil
	}

	var files []string
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == base {
				return walkErr
			}
			logger.Warn("asset directory skipped", logging.String("dir", path), logging.Error(walkErr))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != base && isExcluded(path, excluded) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}

func isExcluded(path string, excluded []string) bool {
	path = filepath.Clean(path)
	for _, base := range excluded {
		if path == base || strings.HasPrefix(path, base+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
