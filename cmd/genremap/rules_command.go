package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"genremap/internal/genremap"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the configured genre mapping pairs in priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Mapping enabled: %s\n", yesNo(cfg.Mapping.Enabled))
			fmt.Fprintf(out, "Pattern mode: %s\n", patternMode(cfg.Mapping.UseRegex))
			fmt.Fprintf(out, "First match only: %s\n", yesNo(cfg.Mapping.FirstMatchOnly))

			pairs := genremap.ParsePairs(cfg.Mapping.Pairs, cfg.Mapping.UseRegex)
			if len(pairs) == 0 {
				fmt.Fprintln(out, "No genre replacement pairs configured")
				return nil
			}

			rows := make([][]string, 0, len(pairs))
			for i, pair := range pairs {
				validity := green("ok", colorize)
				if !pair.Valid() {
					validity = red(fmt.Sprintf("invalid: %v", pair.Err()), colorize)
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					pair.Original,
					pair.Replacement,
					validity,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Pattern", "Replacement", "Status"}, rows, 1))
			return nil
		},
	}
}

func patternMode(useRegex bool) string {
	if useRegex {
		return "regular expressions"
	}
	return "wildcards"
}
