package genremap

import "strings"

// wildcardSentinel stands in for literal periods while the wildcard
// characters are rewritten. A newline cannot appear in a single pair line,
// so it is safe as a placeholder.
const wildcardSentinel = "\n"

// CompileWildcard converts a simple wildcard pattern to a regular
// expression source anchored to the full token. '*' matches any run of
// characters and '?' matches exactly one character; '.', '^', and '$' are
// treated as literals. Other regex metacharacters keep their regex
// meaning, matching the behavior users already rely on.
func CompileWildcard(pattern string) string {
	s := strings.TrimSpace(pattern)

	// Park literal periods so the '*' and '?' rewrites below cannot
	// produce escaped wildcards.
	s = strings.ReplaceAll(s, ".", wildcardSentinel)

	s = strings.ReplaceAll(s, "*", ".*")
	s = strings.ReplaceAll(s, "?", ".")

	s = strings.ReplaceAll(s, "^", `\^`)
	s = strings.ReplaceAll(s, "$", `\$`)

	s = strings.ReplaceAll(s, wildcardSentinel, `\.`)

	return "^" + s + "$"
}
