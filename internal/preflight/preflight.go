package preflight

import (
	"fmt"

	"arcademedia/internal/config"
	"arcademedia/internal/organizer"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	// Optional results never count as failures.
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Detail   string `json:"detail" yaml:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	catalogs := map[string]bool{}
	for _, job := range cfg.Jobs {
		catalogs[job.Catalog] = true
	}

	if catalogs[config.CatalogLaunchBox] {
		results = append(results, CheckFileAccess("LaunchBox database", cfg.Paths.LaunchBoxDB))
		scripts := CheckDirectoryAccess("Launch scripts", cfg.Paths.ScriptsDir, false)
		scripts.Optional = true
		results = append(results, scripts)
	}
	if catalogs[config.CatalogProfiles] || catalogs[config.CatalogLaunchBox] {
		for _, dir := range cfg.Paths.ProfilesDirs {
			res := CheckDirectoryAccess("Profiles", dir, false)
			res.Optional = !catalogs[config.CatalogProfiles]
			results = append(results, res)
		}
	}
	if cfg.Paths.Metadata != "" {
		results = append(results, CheckPathAccess("Metadata", cfg.Paths.Metadata))
	}

	for _, job := range cfg.Jobs {
		rename := job.Mode == string(organizer.ModeRename)
		for _, root := range job.Roots {
			results = append(results, CheckDirectoryAccess(fmt.Sprintf("Job %s root", job.Name), root, rename))
		}
		if !rename && job.Dest != "" {
			results = append(results, CheckDestination(fmt.Sprintf("Job %s destination", job.Name), job.Dest))
		}
	}
	return results
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
