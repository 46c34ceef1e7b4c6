package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"arcademedia/internal/faults"
	"arcademedia/internal/logging"
	"arcademedia/internal/workflow"
)

const unconsumedPreview = 20

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var minScore float64
	var format string

	cmd := &cobra.Command{
		Use:   "run [job...]",
		Short: "Reconcile assets for the configured jobs (all jobs by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outFormat, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-score") {
				if minScore < 0 || minScore >= 1 {
					return faults.Wrap(faults.ErrConfiguration, "cli", "min-score", "", fmt.Errorf("--min-score must be >= 0 and < 1, got %v", minScore))
				}
				cfg.Matching.MinScore = minScore
			}
			jobs, err := cfg.SelectJobs(args)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			runCtx := logging.WithRunID(cmd.Context(), uuid.NewString())
			results, runErr := workflow.NewRunner(cfg, logger).Run(runCtx, jobs, workflow.Options{DryRun: dryRun})

			if handled, err := writeStructured(cmd, outFormat, results); handled {
				if err != nil {
					return err
				}
				return runErr
			}
			out := cmd.OutOrStdout()
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, renderJobResult(res))
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan file operations without performing them")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Override matching.min_score for this run")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json or yaml (default table on a terminal, json otherwise)")
	return cmd
}

func renderJobResult(res workflow.JobResult) string {
	var b strings.Builder
	heading := fmt.Sprintf("Job %s: %s from %s catalog, %s", res.Job, res.Kind, res.Catalog, res.Mode)
	if res.DryRun {
		heading += " (dry run)"
	}
	fmt.Fprintln(&b, heading)
	if res.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", res.Error)
	}
	if res.Report == nil {
		return b.String()
	}

	rows := make([][]string, 0, len(res.Report.Outcomes))
	for _, o := range res.Report.Outcomes {
		score := ""
		if o.AssetPath != "" {
			score = strconv.FormatFloat(o.Score, 'f', 2, 64)
		}
		asset := ""
		if o.AssetPath != "" {
			asset = filepath.Base(o.AssetPath)
		}
		rows = append(rows, []string{o.Title, o.Key, o.ID, string(o.Source), string(o.Status), o.Strategy.String(), score, asset})
	}
	fmt.Fprintln(&b, renderTable("Records",
		[]string{"Title", "Key", "ID", "Source", "Status", "Strategy", "Score", "Asset"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))

	if len(res.Actions) > 0 {
		actionRows := make([][]string, 0, len(res.Actions))
		for _, a := range res.Actions {
			actionRows = append(actionRows, []string{a.ID, a.Destination, string(a.Status), a.Error})
		}
		fmt.Fprintln(&b, renderTable("Files", []string{"ID", "Destination", "Status", "Error"}, actionRows, nil))
	}

	c := res.Report.Counts
	fmt.Fprintf(&b, "Records %d: matched %d, unresolved %d, no asset %d, ambiguous %d, duplicate %d, parse failures %d\n",
		c.Records, c.Matched, c.Unresolved, c.NoAsset, c.Ambiguous, c.Duplicate, c.ParseFailures)
	s := res.Summary
	if res.DryRun {
		fmt.Fprintf(&b, "Planned %d file operations\n", len(res.Actions))
	} else {
		fmt.Fprintf(&b, "Files: done %d, in place %d, source missing %d, target exists %d, failed %d, invalid id %d\n",
			s.Done, s.InPlace, s.SourceMissing, s.TargetExists, s.Failed, s.InvalidID)
	}

	if n := len(res.Report.Unconsumed); n > 0 {
		fmt.Fprintf(&b, "Unused assets (%d of %d scanned):\n", n, c.Assets)
		for i, path := range res.Report.Unconsumed {
			if i == unconsumedPreview {
				fmt.Fprintf(&b, "  ... and %d more (use --format json for the full list)\n", n-unconsumedPreview)
				break
			}
			fmt.Fprintf(&b, "  %s\n", path)
		}
	}
	if res.ReportPath != "" {
		fmt.Fprintf(&b, "Report written to %s\n", res.ReportPath)
	}
	return b.String()
}
