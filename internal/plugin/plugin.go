package plugin

import (
	"log/slog"

	"genremap/internal/genremap"
	"genremap/internal/hostapi"
	"genremap/internal/logging"
	"genremap/internal/rewrite"
)

// Configuration keys registered in the host's per-plugin store. The genre
// separator lives in the shared host namespace, not the plugin's.
const (
	OptEnabled        = "genre_mapper_enabled"
	OptUseRegex       = "genre_mapper_use_regex"
	OptFirstMatchOnly = "genre_mapper_apply_first_match_only"
	OptPairs          = "genre_mapper_replacement_pairs"
	OptGenreSeparator = "join_genres"
)

// Plugin wires the genre mapping core to a host: it owns the shared
// ruleset, rebuilds it from configuration on refresh, and exposes the
// per-track processor registered with the host pipeline.
type Plugin struct {
	host     hostapi.Host
	rules    *genremap.Ruleset
	rewriter *rewrite.Rewriter
	logger   *slog.Logger
}

// Enable initializes the plugin against a host: registers the option keys
// with their defaults, migrates legacy 2.x settings when present, performs
// the initial pair list refresh, and registers the track processor.
func Enable(host hostapi.Host) *Plugin {
	cfg := host.PluginConfig()
	cfg.RegisterOption(OptPairs, "")
	cfg.RegisterOption(OptFirstMatchOnly, false)
	cfg.RegisterOption(OptEnabled, false)
	cfg.RegisterOption(OptUseRegex, false)

	p := &Plugin{
		host:   host,
		rules:  genremap.NewRuleset(),
		logger: logging.NewComponentLogger(host.Logger(), "genremap"),
	}
	p.rewriter = rewrite.NewRewriter(p.rules, p.rewriteOptions, host.Logger())

	p.migrateLegacySettings()
	p.Refresh()

	host.RegisterTrackMetadataProcessor(p.ProcessTrack)
	return p
}

// Refresh rebuilds the shared pair list from configuration and swaps it in
// wholesale. Missing pairs text is logged and leaves the current list in
// place; empty pairs text replaces it with an empty list.
func (p *Plugin) Refresh() {
	cfg := p.host.PluginConfig()

	mode := "simple"
	useRegex := cfg.Bool(OptUseRegex)
	if useRegex {
		mode = "regex"
	}
	p.logger.Debug("refreshing genre replacement pairs", logging.String("mode", mode))

	text, ok := cfg.Lookup(OptPairs)
	if !ok {
		p.logger.Warn("unable to read setting", logging.String("key", OptPairs))
		return
	}

	pairs := genremap.ParsePairs(text, useRegex)
	for _, pair := range pairs {
		p.logger.Debug("add genre mapping pair",
			logging.String("original", pair.Original),
			logging.String("replacement", pair.Replacement))
	}
	p.rules.Replace(pairs)

	if len(pairs) == 0 {
		p.logger.Debug("no genre replacement pairs defined")
	}
}

// ProcessTrack is the per-track metadata processor.
func (p *Plugin) ProcessTrack(md hostapi.TrackMetadata) {
	p.rewriter.ProcessTrack(md)
}

// Rules exposes the active ruleset, used by preview tooling.
func (p *Plugin) Rules() *genremap.Ruleset {
	return p.rules
}

func (p *Plugin) rewriteOptions() rewrite.Options {
	cfg := p.host.PluginConfig()
	return rewrite.Options{
		Enabled:        cfg.Bool(OptEnabled),
		FirstMatchOnly: cfg.Bool(OptFirstMatchOnly),
		Separator:      cfg.String(OptGenreSeparator),
	}
}
