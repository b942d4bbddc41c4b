// Package plugin glues the genre mapping core to a tagging host. Enable
// registers the option keys, migrates legacy settings, builds the shared
// ruleset and rewriter, and registers the per-track processor with the
// host pipeline. Saving the options form always refreshes the pair list
// before returning.
package plugin
