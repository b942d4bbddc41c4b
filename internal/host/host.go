package host

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"genremap/internal/config"
	"genremap/internal/hostapi"
	"genremap/internal/logging"
	"genremap/internal/plugin"
)

// Standalone is the in-process host the CLI hands to the plugin. It backs
// the plugin's option store with the TOML configuration file, so saving an
// option through the store persists it, and it collects the registered
// track processors for the apply pipeline to drive.
type Standalone struct {
	mu         sync.Mutex
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	legacy     hostapi.LegacyStore
	store      *configStore
	processors []hostapi.TrackProcessor
}

// NewStandalone builds a host around cfg. When configPath is non-empty,
// option writes are persisted back to that file. legacy may be nil when no
// 2.x settings file exists.
func NewStandalone(cfg *config.Config, configPath string, legacy hostapi.LegacyStore, logger *slog.Logger) *Standalone {
	if configPath == "" {
		// Migration moves settings out of the legacy file, so it must
		// not run when the migrated values cannot be saved anywhere.
		legacy = nil
	}
	h := &Standalone{
		cfg:        cfg,
		configPath: configPath,
		logger:     logging.NewComponentLogger(logger, "host"),
		legacy:     legacy,
	}
	h.store = &configStore{host: h, defaults: make(map[string]string)}
	return h
}

// PluginConfig returns the per-plugin option store.
func (h *Standalone) PluginConfig() hostapi.ConfigStore { return h.store }

// LegacyConfig returns the legacy 2.x settings namespace, or nil when none
// was found.
func (h *Standalone) LegacyConfig() hostapi.LegacyStore { return h.legacy }

// Logger returns the host logger.
func (h *Standalone) Logger() *slog.Logger { return h.logger }

// RegisterTrackMetadataProcessor appends proc to the processing pipeline.
func (h *Standalone) RegisterTrackMetadataProcessor(proc hostapi.TrackProcessor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.processors = append(h.processors, proc)
}

// Process runs every registered processor against md in registration
// order.
func (h *Standalone) Process(md hostapi.TrackMetadata) {
	h.mu.Lock()
	procs := make([]hostapi.TrackProcessor, len(h.processors))
	copy(procs, h.processors)
	h.mu.Unlock()

	for _, proc := range procs {
		proc(md)
	}
}

// UpdateConfig swaps in a freshly loaded configuration. Subsequent option
// reads observe the new values.
func (h *Standalone) UpdateConfig(cfg *config.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
}

// Config returns the configuration currently backing the store.
func (h *Standalone) Config() *config.Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

// configStore maps plugin option keys onto configuration fields. Keys
// without a field mapping fall back to their registered defaults.
type configStore struct {
	host     *Standalone
	defaults map[string]string
}

func (s *configStore) RegisterOption(key string, def any) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	s.defaults[key] = formatValue(def)
}

func (s *configStore) Lookup(key string) (string, bool) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.valueLocked(key)
}

func (s *configStore) Bool(key string) bool {
	value, ok := s.Lookup(key)
	if !ok {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

func (s *configStore) String(key string) string {
	value, _ := s.Lookup(key)
	return value
}

func (s *configStore) SetBool(key string, value bool) {
	s.set(key, strconv.FormatBool(value))
}

func (s *configStore) SetString(key, value string) {
	s.set(key, value)
}

func (s *configStore) valueLocked(key string) (string, bool) {
	cfg := s.host.cfg
	switch key {
	case plugin.OptEnabled:
		return strconv.FormatBool(cfg.Mapping.Enabled), true
	case plugin.OptUseRegex:
		return strconv.FormatBool(cfg.Mapping.UseRegex), true
	case plugin.OptFirstMatchOnly:
		return strconv.FormatBool(cfg.Mapping.FirstMatchOnly), true
	case plugin.OptPairs:
		return cfg.Mapping.Pairs, true
	case plugin.OptGenreSeparator:
		return cfg.Tags.GenreSeparator, true
	}
	if def, ok := s.defaults[key]; ok {
		return def, true
	}
	return "", false
}

func (s *configStore) set(key, value string) {
	s.host.mu.Lock()
	cfg := s.host.cfg
	switch key {
	case plugin.OptEnabled:
		cfg.Mapping.Enabled = parseBool(value)
	case plugin.OptUseRegex:
		cfg.Mapping.UseRegex = parseBool(value)
	case plugin.OptFirstMatchOnly:
		cfg.Mapping.FirstMatchOnly = parseBool(value)
	case plugin.OptPairs:
		cfg.Mapping.Pairs = value
	case plugin.OptGenreSeparator:
		cfg.Tags.GenreSeparator = value
	default:
		s.defaults[key] = value
	}
	path := s.host.configPath
	s.host.mu.Unlock()

	if path == "" {
		return
	}
	if err := cfg.Save(path); err != nil {
		s.host.logger.Warn("unable to persist option", logging.String("key", key), logging.Error(err))
	}
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
