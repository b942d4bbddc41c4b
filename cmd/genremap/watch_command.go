package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"genremap/internal/apply"
	"genremap/internal/config"
	"genremap/internal/history"
	"genremap/internal/library"
	"genremap/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the mapping pass whenever the configuration is saved",
		Long: `Watch the configuration file and run an apply pass each time it is
saved, so edits to the mapping pairs take effect immediately. Stop
with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", ctx.resolvedConfigPath())

			runPass := func(cfg *config.Config) {
				store, err := history.Open(cfg)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				defer store.Close()

				scanner := library.NewScanner(cfg, logger)
				// Option writes are not persisted here so the pass cannot
				// retrigger the watcher; legacy migration waits for a
				// regular apply run.
				runner := apply.NewRunner(cfg, "", store, scanner, library.NewTagWriter(), logger)
				summary, err := runner.Run(cmd.Context(), dryRun)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				fmt.Fprintf(out, "Run %s: %d tracks seen, %d changed\n",
					summary.RunID, summary.TracksSeen, summary.TracksChanged)
			}

			watcher := watch.New(ctx.resolvedConfigPath(), 0, runPass, logger)

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watcher.Run(sigCtx)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes on each save without writing tags")
	return cmd
}
