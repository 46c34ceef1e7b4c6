package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"arcademedia/internal/faults"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths locates the catalogs the records are read from.
type Paths struct {
	// BaseDir anchors every other relative path, including job roots.
	BaseDir      string   `toml:"base_dir"`
	LaunchBoxDB  string   `toml:"launchbox_db"`
	ScriptsDir   string   `toml:"scripts_dir"`
	ProfilesDirs []string `toml:"profiles_dirs"`
	// Metadata is a sidecar JSON file or a directory of {id}.json files.
	Metadata string `toml:"metadata"`
	// Descriptions is where `arcademedia describe` writes its export.
	Descriptions string `toml:"descriptions"`
	// ReportDir receives a JSON report per job when set.
	ReportDir string `toml:"report_dir"`
}

// Identity configures the launch-script marker.
type Identity struct {
	Marker          string `toml:"marker"`
	MarkerExtension string `toml:"marker_extension"`
}

// Matching holds the fuzzy-matching knobs.
type Matching struct {
	MinScore     float64 `toml:"min_score"`
	LongestFirst bool    `toml:"longest_first"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File additionally receives every log line when set.
	File string `toml:"file"`
}

// Job is one reconciliation pass.
type Job struct {
	Name    string   `toml:"name"`
	Kind    string   `toml:"kind"`
	Catalog string   `toml:"catalog"`
	Roots   []string `toml:"roots"`
	// Recursive walks subdirectories of every root.
	Recursive      bool   `toml:"recursive"`
	Dest           string `toml:"dest"`
	Mode           string `toml:"mode"`
	VideoExtension string `toml:"video_extension"`
	Overwrite      bool   `toml:"overwrite"`
}

// Config encapsulates all configuration values for arcademedia.
//
// Configuration sections:
//   - Paths: catalog locations and the base directory
//   - Identity: launch-script marker
//   - Matching: fuzzy threshold and processing order
//   - Logging: log format and level
//   - Jobs: the reconciliation passes to run
type Config struct {
	Paths    Paths    `toml:"paths"`
	Identity Identity `toml:"identity"`
	Matching Matching `toml:"matching"`
	Logging  Logging  `toml:"logging"`
	Jobs     []Job    `toml:"jobs"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. Errors are marked with
// faults.ErrConfiguration.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "resolve", path, err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		// Lists in the file replace the defaults instead of merging with them.
		cfg.Jobs = nil
		cfg.Paths.ProfilesDirs = nil
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "normalize", "", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "validate", "", err)
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Job returns the job with the given name.
func (c *Config) Job(name string) (Job, bool) {
	for _, job := range c.Jobs {
		if strings.EqualFold(job.Name, strings.TrimSpace(name)) {
			return job, true
		}
	}
	return Job{}, false
}

// SelectJobs returns the named jobs in the order given, or every job when
// names is empty.
func (c *Config) SelectJobs(names []string) ([]Job, error) {
	if len(names) == 0 {
		return append([]Job(nil), c.Jobs...), nil
	}
	selected := make([]Job, 0, len(names))
	for _, name := range names {
		job, ok := c.Job(name)
		if !ok {
			return nil, faults.Wrap(faults.ErrConfiguration, "config", "select", "", fmt.Errorf("unknown job %q", name))
		}
		selected = append(selected, job)
	}
	return selected, nil
}

// Resolve turns a configured path into an absolute one, anchoring relative
// paths at paths.base_dir.
func (c *Config) Resolve(pathValue string) (string, error) {
	return resolvePath(c.Paths.BaseDir, pathValue)
}

func resolvePath(base, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if strings.HasPrefix(pathValue, "~") || filepath.IsAbs(pathValue) || base == "" {
		return expandPath(pathValue)
	}
	return filepath.Clean(filepath.Join(base, pathValue)), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
