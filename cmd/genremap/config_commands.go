package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"genremap/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigSetCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set music_dir and your mapping pairs, then enable mapping.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.resolvedConfigPath())
			if _, statErr := os.Stat(ctx.resolvedConfigPath()); statErr != nil {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			if cfg.Mapping.Enabled && strings.TrimSpace(cfg.Mapping.Pairs) == "" {
				fmt.Fprintln(out, "Note: mapping is enabled but no pairs are configured")
			}
			fmt.Fprintln(out, green("Configuration valid", shouldColorize(out)))
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"config path", ctx.resolvedConfigPath()},
				{"mapping.enabled", yesNo(cfg.Mapping.Enabled)},
				{"mapping.use_regex", yesNo(cfg.Mapping.UseRegex)},
				{"mapping.first_match_only", yesNo(cfg.Mapping.FirstMatchOnly)},
				{"mapping.pairs", cfg.Mapping.Pairs},
				{"tags.genre_separator", strconv.Quote(cfg.GenreSeparator())},
				{"library.music_dir", cfg.Library.MusicDir},
				{"library.extensions", strings.Join(cfg.Library.Extensions, " ")},
				{"paths.data_dir", cfg.Paths.DataDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows))
			return nil
		},
	}
}

func newConfigSetCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Persist a mapping option",
		Long: `Persist a mapping option to the configuration file.

Supported keys: enabled, use_regex, first_match_only, pairs, separator.
For pairs, literal \n sequences are expanded to newlines so multiple
ORIGINAL=REPLACEMENT lines can be set from one argument. Running
'genremap watch' picks the change up live; otherwise the next command
run loads it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			switch key {
			case "enabled", "use_regex", "first_match_only":
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("value for %s must be true or false: %w", key, err)
				}
				switch key {
				case "enabled":
					cfg.Mapping.Enabled = parsed
				case "use_regex":
					cfg.Mapping.UseRegex = parsed
				case "first_match_only":
					cfg.Mapping.FirstMatchOnly = parsed
				}
			case "pairs":
				cfg.Mapping.Pairs = strings.ReplaceAll(value, `\n`, "\n")
			case "separator":
				cfg.Tags.GenreSeparator = value
			default:
				return fmt.Errorf("unknown key %q (expected enabled, use_regex, first_match_only, pairs, or separator)", key)
			}

			if err := cfg.Save(ctx.resolvedConfigPath()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", key, ctx.resolvedConfigPath())
			return nil
		},
	}
	return cmd
}
