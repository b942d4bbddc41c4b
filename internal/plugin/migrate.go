package plugin

import (
	"strconv"

	"genremap/internal/logging"
)

// migrateLegacySettings copies the four option values from the legacy
// global namespace into the per-plugin store and removes them from the
// legacy store. It runs only when the legacy pairs value exists and the
// plugin's own pairs text is still unset, so it is a one-time migration.
func (p *Plugin) migrateLegacySettings() {
	legacy := p.host.LegacyConfig()
	if legacy == nil {
		return
	}
	cfg := p.host.PluginConfig()

	if _, ok := legacy.RawValue(OptPairs); !ok {
		return
	}
	if cfg.String(OptPairs) != "" {
		return
	}

	p.logger.Info("migrating settings from 2.x version")

	if value, ok := legacy.RawValue(OptPairs); ok {
		cfg.SetString(OptPairs, value)
		legacy.Remove(OptPairs)
	}
	for _, key := range []string{OptFirstMatchOnly, OptEnabled, OptUseRegex} {
		value, ok := legacy.RawValue(key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			p.logger.Warn("ignoring unparseable legacy setting",
				logging.String("key", key),
				logging.String("value", value))
			legacy.Remove(key)
			continue
		}
		cfg.SetBool(key, parsed)
		legacy.Remove(key)
	}
}
