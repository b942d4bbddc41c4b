package rewrite

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"genremap/internal/genremap"
	"genremap/internal/hostapi"
	"genremap/internal/logging"
)

// Options are the settings the rewriter reads on every track. Separator
// falls back to the host's default multi-value joiner when empty.
type Options struct {
	Enabled        bool
	FirstMatchOnly bool
	Separator      string
}

// Rewriter applies the active pair list to each track's genre field. It is
// constructed with the shared ruleset and an options provider so refreshed
// configuration takes effect without rebuilding the rewriter.
type Rewriter struct {
	rules   *genremap.Ruleset
	options func() Options
	logger  *slog.Logger
}

// NewRewriter constructs a rewriter. A nil logger is replaced with a no-op
// logger.
func NewRewriter(rules *genremap.Ruleset, options func() Options, logger *slog.Logger) *Rewriter {
	return &Rewriter{
		rules:   rules,
		options: options,
		logger:  logging.NewComponentLogger(logger, "rewriter"),
	}
}

// ProcessTrack rewrites the metadata record's genre field in place. It
// never returns an error to the pipeline: disabled configuration and empty
// genre fields are no-ops, and invalid patterns degrade to "no match".
func (r *Rewriter) ProcessTrack(md hostapi.TrackMetadata) {
	opts := r.options()
	if !opts.Enabled {
		return
	}

	genre := md.Genre()
	if genre == "" {
		r.logger.Debug("no genres found", logging.String("title", md.Title()))
		return
	}

	separator := opts.Separator
	if separator == "" {
		separator = hostapi.DefaultMultiValueJoiner
	}

	tokens := strings.Split(genre, separator)
	genres := MapGenres(tokens, r.rules.Pairs(), opts.FirstMatchOnly, func(pair genremap.Pair, err error) {
		r.logger.Error("invalid regular expression ignored",
			logging.String("pattern", pair.Original),
			logging.Error(err))
	})

	r.logger.Debug("genres updated",
		logging.String("title", md.Title()),
		logging.Strings("before", tokens),
		logging.Strings("after", genres))
	md.SetGenres(genres)
}

// MapGenres applies the ordered pair list to each genre token and returns
// the resulting genre set: title-cased, deduplicated, and sorted. Unless
// firstMatchOnly is set, a replaced token stays subject to later pairs, so
// replacements cascade in list order. report is called for every pair
// whose pattern failed to compile; that pair is skipped.
func MapGenres(tokens []string, pairs []genremap.Pair, firstMatchOnly bool, report func(genremap.Pair, error)) []string {
	// Unicode title-casing does not treat a mid-word apostrophe as a
	// word boundary: "drum'n'bass" comes out as "Drum'n'bass".
	caser := cases.Title(language.Und)
	seen := make(map[string]struct{}, len(tokens))
	result := make([]string, 0, len(tokens))

	for _, token := range tokens {
		value := token
		for _, pair := range pairs {
			if value == "" {
				continue
			}
			matched, err := pair.Matches(value)
			if err != nil {
				if report != nil {
					report(pair, err)
				}
				continue
			}
			if matched {
				value = pair.Replacement
				if firstMatchOnly {
					break
				}
			}
		}
		if value == "" {
			continue
		}
		cased := caser.String(value)
		if _, dup := seen[cased]; dup {
			continue
		}
		seen[cased] = struct{}{}
		result = append(result, cased)
	}

	sort.Strings(result)
	return result
}
