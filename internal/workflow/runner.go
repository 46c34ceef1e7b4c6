package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"arcademedia/internal/assets"
	"arcademedia/internal/config"
	"arcademedia/internal/faults"
	"arcademedia/internal/logging"
	"arcademedia/internal/matching"
	"arcademedia/internal/organizer"
	"arcademedia/internal/reconcile"
)

// Options tunes a run without touching the configuration.
type Options struct {
	// DryRun plans the organizer actions but performs no file operation.
	DryRun bool
}

// JobResult is the outcome of one job.
type JobResult struct {
	Job        string             `json:"job" yaml:"job"`
	Kind       assets.Kind        `json:"kind" yaml:"kind"`
	Catalog    string             `json:"catalog" yaml:"catalog"`
	Mode       organizer.Mode     `json:"mode" yaml:"mode"`
	DryRun     bool               `json:"dry_run" yaml:"dry_run"`
	Report     *reconcile.Report  `json:"report" yaml:"report"`
	Actions    []organizer.Action `json:"actions" yaml:"actions"`
	Summary    organizer.Summary  `json:"summary" yaml:"summary"`
	ReportPath string             `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// Runner executes jobs against one configuration.
type Runner struct {
	cfg     *config.Config
	base    *slog.Logger
	logger  *slog.Logger
	sources *sources
}

// NewRunner constructs a runner. Catalogs are loaded on first use.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		base:    logger,
		logger:  logging.NewComponentLogger(logger, "workflow"),
		sources: newSources(cfg, logger),
	}
}

// Run executes jobs in order under a single run id. A failing job does not
// stop the ones after it; every failure is joined into the returned error.
func (r *Runner) Run(ctx context.Context, jobs []config.Job, opts Options) ([]JobResult, error) {
	if _, ok := logging.RunIDFromContext(ctx); !ok {
		ctx = logging.WithRunID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("run started", logging.Int("jobs", len(jobs)), logging.Bool("dry_run", opts.DryRun))

	results := make([]JobResult, 0, len(jobs))
	var errs []error
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := r.RunJob(ctx, job, opts)
		if err != nil {
			res.Error = err.Error()
			errs = append(errs, fmt.Errorf("job %s: %w", job.Name, err))
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// RunJob reconciles one job and organizes its matches.
func (r *Runner) RunJob(ctx context.Context, job config.Job, opts Options) (JobResult, error) {
	ctx = logging.WithJob(ctx, job.Name)
	logger := logging.WithContext(ctx, r.logger)
	result := JobResult{Job: job.Name, Catalog: job.Catalog, DryRun: opts.DryRun}

	kind, err := assets.ParseKind(job.Kind)
	if err != nil {
		return result, faults.Wrap(faults.ErrConfiguration, "workflow", "kind", job.Name, err)
	}
	mode, err := organizer.ParseMode(job.Mode)
	if err != nil {
		return result, faults.Wrap(faults.ErrConfiguration, "workflow", "mode", job.Name, err)
	}
	result.Kind = kind
	result.Mode = mode

	b, err := r.sources.load(job.Catalog)
	if err != nil {
		return result, err
	}
	logger.Info("job started",
		logging.String("catalog", job.Catalog),
		logging.Int("records", len(b.records)),
		logging.Int("roots", len(job.Roots)),
	)

	engine := matching.NewEngine(r.base)
	engine.MinScore = r.cfg.Matching.MinScore
	engine.LongestFirst = r.cfg.Matching.LongestFirst

	scanner := assets.Scanner{Extensions: kind.Extensions(), Logger: r.base}
	if mode != organizer.ModeRename && job.Dest != "" {
		scanner.Exclude = []string{job.Dest}
	}

	roots := make([]assets.Root, 0, len(job.Roots))
	for _, root := range job.Roots {
		roots = append(roots, assets.Root{Path: root, Recursive: job.Recursive})
	}

	rec := &reconcile.Reconciler{Resolver: b.resolver, Engine: engine, Scanner: scanner, Logger: r.base}
	report, err := rec.Run(ctx, reconcile.Input{Records: b.records, Roots: roots, ParseFailures: b.failures})
	if err != nil {
		return result, err
	}
	result.Report = report

	orgOpts := organizer.Options{
		Dest:           job.Dest,
		Mode:           mode,
		Kind:           kind,
		VideoExtension: job.VideoExtension,
		Overwrite:      job.Overwrite,
	}
	actions := organizer.Plan(report.Matches(), orgOpts)
	if opts.DryRun {
		logger.Info("dry run, no files changed", logging.Int("planned", len(actions)))
	} else {
		actions, err = organizer.New(orgOpts, r.base).Apply(ctx, actions)
		if err != nil {
			result.Actions = actions
			result.Summary = organizer.Summarize(actions)
			return result, err
		}
	}
	result.Actions = actions
	result.Summary = organizer.Summarize(actions)

	if r.cfg.Paths.ReportDir != "" {
		path, err := writeReport(r.cfg.Paths.ReportDir, result)
		if err != nil {
			logger.Warn("report not written", logging.Error(err))
		} else {
			result.ReportPath = path
		}
	}
	return result, nil
}

func writeReport(dir string, result JobResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", faults.Wrap(faults.ErrFileOperation, "workflow", "report", dir, err)
	}
	stamp := time.Now().UTC().Format("20060102T150405Z")
	if result.Report != nil && !result.Report.StartedAt.IsZero() {
		stamp = result.Report.StartedAt.Format("20060102T150405Z")
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", result.Job, stamp))
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", faults.Wrap(faults.ErrFileOperation, "workflow", "report", "encode", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", faults.Wrap(faults.ErrFileOperation, "workflow", "report", path, err)
	}
	return path, nil
}
