package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeIdentity()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeJobs()
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv(envBaseDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.BaseDir = value
	}
	if strings.TrimSpace(c.Paths.BaseDir) == "" {
		c.Paths.BaseDir = defaultBaseDir
	}
	if c.Paths.BaseDir, err = expandPath(strings.TrimSpace(c.Paths.BaseDir)); err != nil {
		return fmt.Errorf("paths.base_dir: %w", err)
	}
	if c.Paths.LaunchBoxDB, err = c.Resolve(c.Paths.LaunchBoxDB); err != nil {
		return fmt.Errorf("paths.launchbox_db: %w", err)
	}
	if c.Paths.ScriptsDir, err = c.Resolve(c.Paths.ScriptsDir); err != nil {
		return fmt.Errorf("paths.scripts_dir: %w", err)
	}
	if c.Paths.Metadata, err = c.Resolve(c.Paths.Metadata); err != nil {
		return fmt.Errorf("paths.metadata: %w", err)
	}
	if strings.TrimSpace(c.Paths.Descriptions) == "" {
		c.Paths.Descriptions = defaultDescriptions
	}
	if c.Paths.Descriptions, err = c.Resolve(c.Paths.Descriptions); err != nil {
		return fmt.Errorf("paths.descriptions: %w", err)
	}
	if c.Paths.ReportDir, err = c.Resolve(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}

	if len(c.Paths.ProfilesDirs) == 0 {
		c.Paths.ProfilesDirs = append([]string(nil), defaultProfilesDirs...)
	}
	dirs := make([]string, 0, len(c.Paths.ProfilesDirs))
	seen := make(map[string]struct{}, len(c.Paths.ProfilesDirs))
	for _, dir := range c.Paths.ProfilesDirs {
		resolved, err := c.Resolve(dir)
		if err != nil {
			return fmt.Errorf("paths.profiles_dirs: %w", err)
		}
		if resolved == "" {
			continue
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		dirs = append(dirs, resolved)
	}
	c.Paths.ProfilesDirs = dirs
	return nil
}

func (c *Config) normalizeIdentity() {
	c.Identity.Marker = strings.TrimSpace(c.Identity.Marker)
	if c.Identity.Marker == "" {
		c.Identity.Marker = defaultMarker
	}
	c.Identity.MarkerExtension = strings.TrimSpace(c.Identity.MarkerExtension)
	if c.Identity.MarkerExtension != "" && !strings.HasPrefix(c.Identity.MarkerExtension, ".") {
		c.Identity.MarkerExtension = "." + c.Identity.MarkerExtension
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = c.Resolve(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeJobs() error {
	if len(c.Jobs) == 0 {
		c.Jobs = defaultJobs()
	}
	for i := range c.Jobs {
		job := &c.Jobs[i]
		job.Name = strings.TrimSpace(job.Name)
		job.Kind = strings.ToLower(strings.TrimSpace(job.Kind))
		if job.Kind == "" {
			job.Kind = "image"
		}
		job.Catalog = strings.ToLower(strings.TrimSpace(job.Catalog))
		if job.Catalog == "" {
			job.Catalog = CatalogLaunchBox
		}
		job.Mode = strings.ToLower(strings.TrimSpace(job.Mode))
		if job.Mode == "" {
			job.Mode = "copy"
		}
		job.VideoExtension = strings.ToLower(strings.TrimSpace(job.VideoExtension))
		if job.Kind == "video" && job.VideoExtension == "" {
			job.VideoExtension = defaultVideoExtension
		}
		if job.VideoExtension != "" && !strings.HasPrefix(job.VideoExtension, ".") {
			job.VideoExtension = "." + job.VideoExtension
		}

		roots := make([]string, 0, len(job.Roots))
		for _, root := range job.Roots {
			resolved, err := c.Resolve(root)
			if err != nil {
				return fmt.Errorf("jobs.%s.roots: %w", job.Name, err)
			}
			if resolved != "" {
				roots = append(roots, resolved)
			}
		}
		job.Roots = roots

		var err error
		if job.Dest, err = c.Resolve(job.Dest); err != nil {
			return fmt.Errorf("jobs.%s.dest: %w", job.Name, err)
		}
	}
	return nil
}
