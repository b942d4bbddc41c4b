// Package host provides the standalone host the CLI runs the plugin
// inside. The Standalone type implements hostapi.Host on top of the TOML
// configuration file: option reads come from the loaded config, option
// writes persist back to disk, and registered track processors are driven
// by the apply pipeline. LegacyFile adapts an old 2.x settings file to the
// legacy namespace so one-time migration can run.
package host
