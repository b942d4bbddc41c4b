// Package genremap implements the genre mapping rule model: wildcard
// pattern compilation, replacement pair parsing, and the shared ruleset
// that holds the active ordered pair list.
//
// Patterns are matched case-insensitively. A pair entered in simple
// wildcard mode is compiled to an anchored regular expression where '*'
// matches any run of characters and '?' matches a single character;
// a pair entered in regex mode is used verbatim and may fail to compile,
// in which case it is skipped at match time.
package genremap
