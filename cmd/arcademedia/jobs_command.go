package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"arcademedia/internal/config"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List configured jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outFormat, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, outFormat, jobViews(cfg.Jobs)); handled {
				return err
			}
			rows := make([][]string, 0, len(cfg.Jobs))
			for _, job := range cfg.Jobs {
				dest := job.Dest
				if job.Mode == "rename" {
					dest = "(in place)"
				}
				roots := strings.Join(job.Roots, "\n")
				if job.Recursive {
					roots += "\n(recursive)"
				}
				rows = append(rows, []string{job.Name, job.Kind, job.Catalog, job.Mode, roots, dest})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable("", []string{"Name", "Kind", "Catalog", "Mode", "Roots", "Destination"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json or yaml")
	return cmd
}

type jobView struct {
	Name           string   `json:"name" yaml:"name"`
	Kind           string   `json:"kind" yaml:"kind"`
	Catalog        string   `json:"catalog" yaml:"catalog"`
	Roots          []string `json:"roots" yaml:"roots"`
	Recursive      bool     `json:"recursive" yaml:"recursive"`
	Dest           string   `json:"dest,omitempty" yaml:"dest,omitempty"`
	Mode           string   `json:"mode" yaml:"mode"`
	VideoExtension string   `json:"video_extension,omitempty" yaml:"video_extension,omitempty"`
	Overwrite      bool     `json:"overwrite" yaml:"overwrite"`
}

func jobViews(jobs []config.Job) []jobView {
	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, jobView(job))
	}
	return views
}
