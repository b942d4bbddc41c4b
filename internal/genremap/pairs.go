package genremap

import (
	"regexp"
	"strings"
)

// lineSplit matches any of the line-ending styles accepted in pairs text.
var lineSplit = regexp.MustCompile("\r\n|\n\r|\n")

// Pair is one ordered replacement rule. Pattern holds the regular
// expression source derived from Original (or Original verbatim in regex
// mode). The compiled form is case-insensitive and kept alongside any
// compile error so invalid user regexes surface when the pair is applied
// rather than aborting the whole list.
type Pair struct {
	Original    string
	Pattern     string
	Replacement string

	re  *regexp.Regexp
	err error
}

// NewPair builds a pair from a trimmed original/replacement line. When
// useRegex is false the original is compiled through the wildcard syntax.
func NewPair(original, replacement string, useRegex bool) Pair {
	pattern := original
	if !useRegex {
		pattern = CompileWildcard(original)
	}
	p := Pair{Original: original, Pattern: pattern, Replacement: replacement}
	p.re, p.err = regexp.Compile("(?i)" + pattern)
	return p
}

// Matches reports whether the pattern is found anywhere in token. The
// returned error is the pattern's compile error, possible only for
// user-supplied regex patterns.
func (p Pair) Matches(token string) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	return p.re.MatchString(token), nil
}

// Valid reports whether the pair's pattern compiled.
func (p Pair) Valid() bool { return p.err == nil }

// Err returns the pattern compile error, if any.
func (p Pair) Err() error { return p.err }

// ParsePairs parses multi-line pairs text into an ordered pair list.
// Each line has the form ORIGINAL=REPLACEMENT, split on the first '='.
// Lines without '=' and lines whose trimmed original is empty (including
// lines starting with '=') are skipped.
func ParsePairs(text string, useRegex bool) []Pair {
	var pairs []Pair
	for _, line := range lineSplit.Split(text, -1) {
		original, replacement, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		original = strings.TrimSpace(original)
		if original == "" {
			continue
		}
		replacement = strings.TrimSpace(replacement)
		pairs = append(pairs, NewPair(original, replacement, useRegex))
	}
	return pairs
}
