package workflow

import (
	"context"
	"path/filepath"
	"strings"

	"arcademedia/internal/faults"
	"arcademedia/internal/launchbox"
	"arcademedia/internal/launchscript"
	"arcademedia/internal/logging"
	"arcademedia/internal/sidecar"
)

// DescribeResult summarizes a description export.
type DescribeResult struct {
	Path      string `json:"path" yaml:"path"`
	Scripts   int    `json:"scripts" yaml:"scripts"`
	Written   int    `json:"written" yaml:"written"`
	NoGame    int    `json:"no_game" yaml:"no_game"`
	NoProfile int    `json:"no_profile" yaml:"no_profile"`
}

// Describe pairs every launch script with the LaunchBox game that runs it and
// writes the game's descriptive fields keyed by the script's profile id.
// Scripts with no game or no parsable marker are counted and skipped. An
// empty output uses paths.descriptions.
func (r *Runner) Describe(ctx context.Context, output string) (*DescribeResult, error) {
	logger := logging.WithContext(ctx, r.logger)
	if output == "" {
		output = r.cfg.Paths.Descriptions
	}
	result := &DescribeResult{Path: output}

	games, err := r.sources.launchBox()
	if err != nil {
		return nil, err
	}
	byScript := make(map[string]launchbox.Game, len(games))
	for _, g := range games {
		name := scriptStem(g.ScriptName())
		if name == "" {
			continue
		}
		byScript[name] = g
	}

	dir := r.sources.scripts()
	scripts, err := dir.Scripts()
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "describe", "scripts", dir.Path, err)
	}

	descriptions := make(map[string]sidecar.Description)
	for _, path := range scripts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Scripts++
		stem := scriptStem(filepath.Base(path))
		game, ok := byScript[stem]
		if !ok {
			result.NoGame++
			logger.Debug("no launchbox game for script", logging.String("script", path))
			continue
		}
		line, err := launchscript.ReadFirstLine(path)
		if err != nil {
			result.NoProfile++
			logger.Warn("launch script unreadable", logging.String("script", path), logging.Error(err))
			continue
		}
		id, ok := dir.Marker.Extract(line)
		if !ok {
			result.NoProfile++
			logger.Debug("no profile marker in script", logging.String("script", path))
			continue
		}
		descriptions[id] = sidecar.Description{
			ProfileID:   id,
			BatName:     stem,
			Title:       game.Title,
			Notes:       game.Notes,
			Genre:       game.Genre,
			Developer:   game.Developer,
			Publisher:   game.Publisher,
			ReleaseDate: game.ReleaseDate,
		}
	}

	if err := sidecar.WriteDescriptions(output, descriptions); err != nil {
		return nil, faults.Wrap(faults.ErrFileOperation, "describe", "write", output, err)
	}
	result.Written = len(descriptions)
	logger.Info("descriptions written",
		logging.String("path", output),
		logging.Int("written", result.Written),
		logging.Int("no_game", result.NoGame),
		logging.Int("no_profile", result.NoProfile),
	)
	return result, nil
}

func scriptStem(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
