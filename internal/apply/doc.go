// Package apply drives one mapping pass over the music library: it locks
// out concurrent runs, enables the plugin against the standalone host,
// scans the configured directory, runs every track through the processor
// pipeline, writes rewritten tags back to disk, and records the changes
// in the history store. Dry runs skip the tag writes.
package apply
