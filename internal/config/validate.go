package config

import (
	"errors"
	"fmt"
	"strings"

	"arcademedia/internal/assets"
	"arcademedia/internal/logging"
	"arcademedia/internal/organizer"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateIdentity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateJobs()
}

func (c *Config) validateMatching() error {
	if c.Matching.MinScore < 0 || c.Matching.MinScore >= 1 {
		return errors.New("matching.min_score must be >= 0 and < 1")
	}
	return nil
}

func (c *Config) validateIdentity() error {
	if strings.TrimSpace(c.Identity.Marker) == "" {
		return errors.New("identity.marker must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

func (c *Config) validateJobs() error {
	if len(c.Jobs) == 0 {
		return errors.New("at least one [[jobs]] entry is required")
	}
	seen := make(map[string]struct{}, len(c.Jobs))
	for _, job := range c.Jobs {
		if job.Name == "" {
			return errors.New("jobs.name must be set")
		}
		key := strings.ToLower(job.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("jobs.name %q is duplicated", job.Name)
		}
		seen[key] = struct{}{}

		if _, err := assets.ParseKind(job.Kind); err != nil {
			return fmt.Errorf("jobs.%s.kind: %w", job.Name, err)
		}
		mode, err := organizer.ParseMode(job.Mode)
		if err != nil {
			return fmt.Errorf("jobs.%s.mode: %w", job.Name, err)
		}
		if len(job.Roots) == 0 {
			return fmt.Errorf("jobs.%s.roots must include at least one directory", job.Name)
		}
		if mode != organizer.ModeRename && job.Dest == "" {
			return fmt.Errorf("jobs.%s.dest must be set unless mode is rename", job.Name)
		}
		if err := c.validateCatalog(job); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateCatalog(job Job) error {
	switch job.Catalog {
	case CatalogLaunchBox:
		if c.Paths.LaunchBoxDB == "" {
			return fmt.Errorf("jobs.%s: paths.launchbox_db must be set for the launchbox catalog", job.Name)
		}
	case CatalogProfiles:
		if len(c.Paths.ProfilesDirs) == 0 {
			return fmt.Errorf("jobs.%s: paths.profiles_dirs must be set for the profiles catalog", job.Name)
		}
	case CatalogMetadata:
		if c.Paths.Metadata == "" {
			return fmt.Errorf("jobs.%s: paths.metadata must be set for the metadata catalog", job.Name)
		}
	default:
		return fmt.Errorf("jobs.%s.catalog: unknown catalog %q", job.Name, job.Catalog)
	}
	return nil
}
