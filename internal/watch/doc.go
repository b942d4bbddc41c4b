// Package watch reloads the configuration file when it changes on disk.
// It watches the file's directory with fsnotify, debounces the event burst
// a save produces, and invokes a callback with the freshly loaded config so
// the host can swap it in and refresh the pair list.
package watch
