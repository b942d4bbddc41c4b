// Package rewrite contains the per-track genre rewriter: it splits a
// track's genre field on the configured separator, applies the ordered
// replacement pairs to each token, and writes back the title-cased,
// deduplicated, lexicographically sorted result.
package rewrite
