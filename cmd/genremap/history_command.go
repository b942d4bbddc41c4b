package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"genremap/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var runID string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List apply runs or show one run's changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				changes, err := store.Changes(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(changes) == 0 {
					fmt.Fprintf(out, "No changes recorded for run %s\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(changes))
				for _, change := range changes {
					rows = append(rows, []string{change.Path, change.Title, change.Before, change.After})
				}
				fmt.Fprintln(out, renderTable([]string{"Path", "Title", "Before", "After"}, rows))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := "-"
				if !run.FinishedAt.IsZero() {
					finished = run.FinishedAt.Local().Format(time.RFC3339)
				}
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(time.RFC3339),
					finished,
					yesNo(run.DryRun),
					strconv.Itoa(run.TracksSeen),
					strconv.Itoa(run.TracksChanged),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Finished", "Dry Run", "Seen", "Changed"},
				rows, 5, 6))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Show per-track changes for one run ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}
