// Package reconcile sequences identifier resolution, asset indexing and
// matching for one batch of source records and classifies every record.
// It reads asset roots but never modifies the filesystem.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"arcademedia/internal/assets"
	"arcademedia/internal/faults"
	"arcademedia/internal/identity"
	"arcademedia/internal/logging"
	"arcademedia/internal/matching"
	"arcademedia/internal/textutil"
)

// Input is one batch.
type Input struct {
	Records []identity.SourceRecord
	Roots   []assets.Root
	// ParseFailures carries artifact failures counted while building Records.
	ParseFailures int
}

// Reconciler wires the resolution stages together.
type Reconciler struct {
	Resolver *identity.Resolver
	Engine   *matching.Engine
	Scanner  assets.Scanner
	Logger   *slog.Logger

	now func() time.Time
}

// Run resolves, indexes and matches in sequence. It fails only when no asset
// root can be read.
func (r *Reconciler) Run(ctx context.Context, in Input) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := r.now
	if now == nil {
		now = time.Now
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.Logger, "reconcile"))

	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
	}
	job, _ := logging.JobFromContext(ctx)
	report := &Report{RunID: runID, Job: job, StartedAt: now()}

	resolver := r.Resolver
	if resolver == nil {
		resolver = &identity.Resolver{}
	}
	engine := r.Engine
	if engine == nil {
		engine = matching.NewEngine(r.Logger)
	}

	outcomes := make([]Outcome, len(in.Records))
	owner := map[string]int{}
	var targets []matching.Target
	parseFailures := in.ParseFailures

	for i, rec := range in.Records {
		res := resolver.Resolve(rec)
		out := Outcome{
			Title:      rec.Title,
			Key:        textutil.NormalizeKeySep(rec.Title, "-"),
			ID:         res.ID,
			Source:     res.Source,
			Candidates: res.Candidates,
		}
		if res.Err != nil {
			parseFailures++
			out.Error = res.Err.Error()
			logger.Warn("identifier artifact unreadable",
				logging.String(logging.FieldTitle, rec.Title),
				logging.Error(res.Err),
			)
		}
		switch {
		case res.Source == identity.SourceAmbiguous:
			out.Status = StatusAmbiguous
			logger.Warn("ambiguous identifier",
				logging.String(logging.FieldTitle, rec.Title),
				logging.String("candidates", strings.Join(res.Candidates, ",")),
			)
		case !res.Resolved():
			out.Status = StatusUnresolved
		default:
			if first, dup := owner[res.ID]; dup {
				out.Status = StatusDuplicate
				logger.Debug("duplicate identifier",
					logging.String(logging.FieldCanonicalID, res.ID),
					logging.String(logging.FieldTitle, rec.Title),
					logging.String("kept_title", in.Records[first].Title),
				)
			} else {
				owner[res.ID] = i
				targets = append(targets, matching.Target{ID: res.ID, Title: rec.Title})
			}
		}
		outcomes[i] = out
	}

	idx := r.Scanner.Scan(in.Roots)
	if idx.AllMissing(in.Roots) {
		return nil, faults.Wrap(faults.ErrConfiguration, "reconcile", "index",
			fmt.Sprintf("no readable asset root (%s)", joinRoots(in.Roots)), nil)
	}

	consumed := matching.NewConsumed()
	results := engine.MatchAll(targets, idx, consumed)
	byID := make(map[string]matching.Result, len(results))
	for _, res := range results {
		byID[res.ID] = res
	}

	for id, i := range owner {
		res := byID[id]
		outcomes[i].Strategy = res.Strategy
		outcomes[i].Score = res.Score
		outcomes[i].AssetPath = res.AssetPath
		if res.Matched() {
			outcomes[i].Status = StatusMatched
		} else {
			outcomes[i].Status = StatusNoAsset
		}
	}

	unconsumed := make([]string, 0, idx.Len())
	for _, c := range idx.All() {
		if !consumed.Has(c.Path) {
			unconsumed = append(unconsumed, c.Path)
		}
	}

	report.Outcomes = outcomes
	report.Results = results
	report.Unconsumed = unconsumed
	report.Counts.ParseFailures = parseFailures
	report.Counts.Assets = idx.Len()
	report.FinishedAt = now()
	report.finalize()

	logger.Info("reconciliation complete",
		logging.Int("records", report.Counts.Records),
		logging.Int("matched", report.Counts.Matched),
		logging.Int("unresolved", report.Counts.Unresolved),
		logging.Int("no_asset", report.Counts.NoAsset),
		logging.Int("ambiguous", report.Counts.Ambiguous),
		logging.Int("duplicate", report.Counts.Duplicate),
		logging.Int("parse_failures", report.Counts.ParseFailures),
		logging.Int("consumed", consumed.Len()),
		logging.Int("unconsumed", report.Counts.Unconsumed),
	)
	return report, nil
}

func joinRoots(roots []assets.Root) string {
	if len(roots) == 0 {
		return "none configured"
	}
	parts := make([]string, 0, len(roots))
	for _, root := range roots {
		parts = append(parts, root.Path)
	}
	return strings.Join(parts, ", ")
}
