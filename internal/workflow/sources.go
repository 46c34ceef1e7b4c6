package workflow

import (
	"log/slog"

	"arcademedia/internal/config"
	"arcademedia/internal/identity"
	"arcademedia/internal/launchbox"
	"arcademedia/internal/launchscript"
	"arcademedia/internal/logging"
	"arcademedia/internal/profiles"
	"arcademedia/internal/sidecar"
)

// sources caches the catalogs a Runner has loaded.
type sources struct {
	cfg    *config.Config
	base   *slog.Logger
	logger *slog.Logger

	games    []launchbox.Game
	profiles *profiles.Catalog
	sidecar  *sidecar.Store
}

func newSources(cfg *config.Config, logger *slog.Logger) *sources {
	return &sources{cfg: cfg, base: logger, logger: logging.NewComponentLogger(logger, "catalog")}
}

func (s *sources) launchBox() ([]launchbox.Game, error) {
	if s.games != nil {
		return s.games, nil
	}
	games, err := launchbox.Load(s.cfg.Paths.LaunchBoxDB)
	if err != nil {
		return nil, err
	}
	s.logger.Info("launchbox database loaded",
		logging.String("path", s.cfg.Paths.LaunchBoxDB),
		logging.Int("games", len(games)),
	)
	s.games = games
	return games, nil
}

func (s *sources) profileCatalog() (*profiles.Catalog, error) {
	if s.profiles != nil {
		return s.profiles, nil
	}
	cat, err := profiles.Load(s.cfg.Paths.ProfilesDirs, s.base)
	if err != nil {
		return nil, err
	}
	s.profiles = cat
	return cat, nil
}

func (s *sources) metadata() (*sidecar.Store, error) {
	if s.sidecar != nil {
		return s.sidecar, nil
	}
	store, err := sidecar.Load(s.cfg.Paths.Metadata, s.base)
	if err != nil {
		return nil, err
	}
	s.sidecar = store
	return store, nil
}

func (s *sources) scripts() launchscript.Dir {
	return launchscript.Dir{
		Path: s.cfg.Paths.ScriptsDir,
		Marker: launchscript.Marker{
			Token:     s.cfg.Identity.Marker,
			Extension: s.cfg.Identity.MarkerExtension,
		},
	}
}

// batch is the record set of one job and the resolver that serves it.
type batch struct {
	records  []identity.SourceRecord
	resolver *identity.Resolver
	failures int
}

// load builds the records for catalog and a resolver carrying every
// configured identifier source. Optional context that cannot be loaded is
// logged and left out; the catalog itself is required.
func (s *sources) load(catalog string) (*batch, error) {
	b := &batch{resolver: &identity.Resolver{Scripts: s.scripts()}}

	switch catalog {
	case config.CatalogProfiles:
		cat, err := s.profileCatalog()
		if err != nil {
			return nil, err
		}
		if err := cat.Require(s.cfg.Paths.ProfilesDirs); err != nil {
			return nil, err
		}
		for _, p := range cat.All() {
			title := p.GameName
			if title == "" {
				title = p.ID
			}
			b.records = append(b.records, identity.NewSourceRecord(title, p.ID, ""))
		}
		b.failures += cat.Failures
		return b, nil

	case config.CatalogMetadata:
		store, err := s.metadata()
		if err != nil {
			return nil, err
		}
		for _, entry := range store.Entries() {
			b.records = append(b.records, identity.NewSourceRecord(entry.Title, entry.ID, ""))
		}
		b.failures += store.Failures
		return b, nil
	}

	games, err := s.launchBox()
	if err != nil {
		return nil, err
	}
	for _, g := range games {
		b.records = append(b.records, identity.NewSourceRecord(g.Title, "", g.ApplicationPath))
	}
	if s.cfg.Paths.Metadata != "" {
		if store, err := s.metadata(); err != nil {
			s.logger.Warn("sidecar metadata unavailable", logging.Error(err))
		} else {
			b.resolver.Sidecar = store
			b.failures += store.Failures
		}
	}
	if len(s.cfg.Paths.ProfilesDirs) > 0 {
		if cat, err := s.profileCatalog(); err != nil {
			s.logger.Warn("profiles unavailable", logging.Error(err))
		} else if cat.Len() > 0 {
			b.resolver.Profiles = cat
			b.failures += cat.Failures
		}
	}
	return b, nil
}
