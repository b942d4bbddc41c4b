// Package hostapi declares the capability interfaces a tagging host must
// provide for the genre mapping plugin: per-plugin configuration storage,
// the legacy settings namespace, leveled logging, and per-track processor
// registration. The mapping core depends only on these interfaces and
// plain data, so it is testable without any concrete host.
package hostapi
