package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcademedia/internal/workflow"
)

func newDescribeCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Export LaunchBox descriptions keyed by profile id",
		Long: `describe pairs each launch script with its LaunchBox game and writes the
game's title, notes, genre, developer, publisher and release date keyed by
the profile id found in the script. The file can be used as paths.metadata.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := output
			if target != "" {
				if target, err = cfg.Resolve(target); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, err := workflow.NewRunner(cfg, logger).Describe(cmd.Context(), target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d descriptions to %s\n", res.Written, res.Path)
			fmt.Fprintf(out, "Scripts: %d, without LaunchBox game: %d, without profile marker: %d\n", res.Scripts, res.NoGame, res.NoProfile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default paths.descriptions)")
	return cmd
}

