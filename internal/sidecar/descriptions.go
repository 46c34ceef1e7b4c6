package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Description is the per-game record written by the describe command. Its
// "title" field makes the output file a valid store for Load.
type Description struct {
	ProfileID   string `json:"profile_id"`
	BatName     string `json:"bat_name"`
	Title       string `json:"title"`
	Notes       string `json:"notes"`
	Genre       string `json:"genre"`
	Developer   string `json:"developer"`
	Publisher   string `json:"publisher"`
	ReleaseDate string `json:"release_date"`
}

// WriteDescriptions writes descriptions keyed by profile id to path,
// replacing any existing file atomically.
func WriteDescriptions(path string, descriptions map[string]Description) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".descriptions-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(descriptions); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode descriptions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync descriptions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close descriptions: %w", err)
	}
	return os.Rename(tmpName, path)
}
