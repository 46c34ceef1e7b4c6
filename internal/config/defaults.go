package config

import "arcademedia/internal/matching"

const (
	defaultConfigPath      = "~/.config/arcademedia/config.toml"
	projectConfigName      = "arcademedia.toml"
	defaultBaseDir         = "."
	defaultLaunchBoxDB     = "Teknoparrot.xml"
	defaultScriptsDir      = "bat"
	defaultDescriptions    = "launchbox_descriptions.json"
	defaultMarker          = "--profile="
	defaultMarkerExtension = ".xml"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultVideoExtension  = ".mp4"

	envBaseDir  = "ARCADEMEDIA_BASE_DIR"
	envLogLevel = "ARCADEMEDIA_LOG_LEVEL"
)

// Catalog names accepted in jobs.catalog.
const (
	CatalogLaunchBox = "launchbox"
	CatalogProfiles  = "profiles"
	CatalogMetadata  = "metadata"
)

var defaultProfilesDirs = []string{"UserProfiles", "UserProfiles_by_genre"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BaseDir:      defaultBaseDir,
			LaunchBoxDB:  defaultLaunchBoxDB,
			ScriptsDir:   defaultScriptsDir,
			ProfilesDirs: append([]string(nil), defaultProfilesDirs...),
			Descriptions: defaultDescriptions,
		},
		Identity: Identity{
			Marker:          defaultMarker,
			MarkerExtension: defaultMarkerExtension,
		},
		Matching: Matching{
			MinScore:     matching.DefaultMinScore,
			LongestFirst: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Jobs: defaultJobs(),
	}
}

func defaultJobs() []Job {
	return []Job{
		{
			Name:    "covers",
			Kind:    "image",
			Catalog: CatalogLaunchBox,
			Roots:   []string{"covers/Box - 3D", "covers/Arcade - Cabinet"},
			Dest:    "Media/Covers",
			Mode:    "copy",
		},
		{
			Name:           "videos",
			Kind:           "video",
			Catalog:        CatalogLaunchBox,
			Roots:          []string{"videos"},
			Dest:           "Media/Videos",
			Mode:           "move",
			VideoExtension: defaultVideoExtension,
		},
	}
}
