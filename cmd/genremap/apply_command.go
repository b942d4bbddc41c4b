package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"genremap/internal/apply"
	"genremap/internal/history"
	"genremap/internal/library"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite genre tags across the music library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			scanner := library.NewScanner(cfg, logger)
			runner := apply.NewRunner(cfg, ctx.resolvedConfigPath(), store, scanner, library.NewTagWriter(), logger)

			summary, err := runner.Run(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			label := "Run"
			if summary.DryRun {
				label = "Dry run"
			}
			fmt.Fprintf(out, "%s %s: %d tracks seen, %s\n",
				label, summary.RunID, summary.TracksSeen,
				green(fmt.Sprintf("%d changed", summary.TracksChanged), colorize))

			if len(summary.Changes) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(summary.Changes))
			for _, change := range summary.Changes {
				rows = append(rows, []string{change.Path, change.Title, change.Before, change.After})
			}
			fmt.Fprintln(out, renderTable([]string{"Path", "Title", "Before", "After"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing tags")
	return cmd
}
