package hostapi

import "log/slog"

// DefaultMultiValueJoiner is the host-wide delimiter used to join and
// split multi-value tag fields when no field-specific separator is
// configured.
const DefaultMultiValueJoiner = "; "

// ConfigStore is the per-plugin key/value configuration surface provided
// by the host.
type ConfigStore interface {
	// RegisterOption declares a key and its default value.
	RegisterOption(key string, def any)
	// Lookup returns the raw string form of a key's value and whether the
	// key is known to the store.
	Lookup(key string) (string, bool)
	Bool(key string) bool
	String(key string) string
	SetBool(key string, value bool)
	SetString(key, value string)
}

// LegacyStore is the host's old global settings namespace, consulted only
// to migrate settings written by 2.x versions of the plugin.
type LegacyStore interface {
	// RawValue returns the stored value for key, reporting false when the
	// key has never been set.
	RawValue(key string) (string, bool)
	// Remove deletes key from the legacy namespace.
	Remove(key string)
}

// TrackMetadata is the mutable per-track metadata record handed to track
// processors. Genre returns the pre-joined genre field; SetGenres writes
// it back as an ordered list.
type TrackMetadata interface {
	Title() string
	Genre() string
	SetGenres(genres []string)
}

// TrackProcessor is a per-track callback invoked by the host's metadata
// processing pipeline.
type TrackProcessor func(md TrackMetadata)

// Host is the narrow set of capabilities the plugin consumes.
type Host interface {
	PluginConfig() ConfigStore
	LegacyConfig() LegacyStore
	Logger() *slog.Logger
	RegisterTrackMetadataProcessor(proc TrackProcessor)
}
