package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"genremap/internal/genremap"
	"genremap/internal/rewrite"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview GENRE...",
		Short: "Show how genre fields would be rewritten",
		Long: `Run the configured mapping pairs over genre fields given on the
command line and print the result. Each argument is treated as one
track's genre field; multi-value fields use the configured separator.
The preview runs even when mapping is disabled.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			pairs := genremap.ParsePairs(cfg.Mapping.Pairs, cfg.Mapping.UseRegex)
			separator := cfg.GenreSeparator()

			rows := make([][]string, 0, len(args))
			for _, field := range args {
				tokens := strings.Split(field, separator)
				mapped := rewrite.MapGenres(tokens, pairs, cfg.Mapping.FirstMatchOnly, func(pair genremap.Pair, err error) {
					fmt.Fprintln(cmd.ErrOrStderr(), red(fmt.Sprintf("ignoring invalid pattern %q: %v", pair.Original, err), shouldColorize(cmd.ErrOrStderr())))
				})
				result := strings.Join(mapped, separator)
				if result != field {
					result = green(result, colorize)
				}
				rows = append(rows, []string{field, result})
			}
			fmt.Fprintln(out, renderTable([]string{"Input", "Result"}, rows))
			return nil
		},
	}
}
