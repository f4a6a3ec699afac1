// Package intent classifies a free-text chart question into a fixed intent
// set and extracts its parameters.
//
// Classification is an ordered cascade of regular-expression rules; the
// first rule that matches and yields usable parameters wins. Ordering
// matters: artist-qualified duration patterns run before the generic
// duration patterns so the artist name is not swallowed into the song
// field, and year patterns run before the broader decade patterns.
// Parse never fails; anything unclassifiable comes back as IntentUnknown.
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the closed-set classification of a query's purpose.
type Intent string

const (
	IntentTopSongs               Intent = "top_songs"
	IntentTopSongsDecade         Intent = "top_songs_decade"
	IntentSongDuration           Intent = "song_duration"
	IntentSongDurationWithArtist Intent = "song_duration_with_artist"
	IntentUnknown                Intent = "unknown"
)

const (
	// DefaultTopN is the result count for year queries without an explicit N.
	DefaultTopN = 10
	// DefaultDecadeN is the result count for decade queries.
	DefaultDecadeN = 20
	// MaxTopN caps any requested result count.
	MaxTopN = 50
)

// ParsedQuery is the structured form of a classified query. Fields beyond
// Intent are populated only where the intent uses them.
type ParsedQuery struct {
	Intent      Intent
	Year        int
	DecadeStart int
	N           int
	Song        string
	Artist      string
}

// rule pairs a pattern with an extractor turning its capture groups into a
// ParsedQuery. Extractors return ok=false to let the cascade keep going,
// e.g. when stop-word stripping empties a captured name.
type rule struct {
	re      *regexp.Regexp
	extract func(groups []string) (ParsedQuery, bool)
}

var topYearNRules = compileRules([]string{
	`top\s+(\d+)\s+songs?\s+(?:of|from|in)\s+(\d{4})`,
	`best\s+(\d+)\s+(?:songs?|hits?)\s+(?:of|from|in)\s+(\d{4})`,
	`(\d+)\s+(?:top|best)\s+songs?\s+(?:of|from|in)\s+(\d{4})`,
	`show\s+me\s+(?:top\s+)?(\d+)\s+songs?\s+(?:of|from|in)\s+(\d{4})`,
}, extractTopYearN)

var topYearDefaultRules = compileRules([]string{
	`top\s+songs?\s+(?:of|from|in)\s+(\d{4})`,
	`best\s+(?:songs?|hits?)\s+(?:of|from|in)\s+(\d{4})`,
	`popular\s+songs?\s+(?:of|from|in)\s+(\d{4})`,
}, extractTopYearDefault)

var decadeRules = compileRules([]string{
	`(?:top|best)\s+(?:songs?|hits?)\s+(?:of|from)\s+the\s+(\d{2})s`,
	`(?:top|best)\s+(?:songs?|hits?)\s+(?:of|from)\s+(\d{4})s`,
	`best\s+of\s+(?:the\s+)?(\d{2})s`,
	`best\s+of\s+(\d{4})s`,
}, extractDecade)

var durationWithArtistRules = compileRules([]string{
	`how long (?:was|did) (.+?) by (.+?) (?:stay|on|chart|last)`,
	`how many weeks (?:was|did) (.+?) by (.+?) (?:on|stay|chart)`,
	`(.+?) by (.+?) (?:duration|weeks|chart time)(?:\?|$)`,
	`duration (?:of|for) (.+?) by (.+?)(?:\?|$|on)`,
	`(.+?) by (.+?) on (?:the )?chart(?:\?|$)`,
}, extractDurationWithArtist)

var durationRules = compileRules([]string{
	`how long (?:was|did) (.+?) (?:stay|on|chart|last)`,
	`how many weeks (?:was|did) (.+?) (?:on|stay|chart)`,
	`duration (?:of|for) (.+?)(?:\?|$|on)`,
	`weeks (?:for|of) (.+?)(?:\?|$|on)`,
	`(.+?) (?:duration|weeks|chart time)(?:\?|$)`,
	`chart time (?:for|of) (.+?)(?:\?|$)`,
	`how long (.+?)(?:\?|$)`,
	`(.+?) on (?:the )?chart(?:\?|$)`,
	`(.+?) billboard(?:\?|$)`,
}, extractDuration)

// ruleCascade is the full parser in evaluation order.
var ruleCascade = concat(
	topYearNRules,
	topYearDefaultRules,
	decadeRules,
	durationWithArtistRules,
	durationRules,
)

// Stop words stripped from captured song and artist names. The duration-
// without-artist set is slightly smaller, matching the original behavior.
var (
	artistQueryStopWords = []string{"the", "on", "chart", "billboard", "hot", "100", "was", "did", "stay", "long"}
	songQueryStopWords   = []string{"the", "on", "chart", "billboard", "hot", "100", "was", "did"}

	artistStopRE = stopWordRegexp(artistQueryStopWords)
	songStopRE   = stopWordRegexp(songQueryStopWords)

	spaceRE = regexp.MustCompile(`\s+`)
)

// Parse classifies query against the rule cascade. First match wins; no
// match yields IntentUnknown. It never returns an error.
func Parse(query string) ParsedQuery {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ParsedQuery{Intent: IntentUnknown}
	}
	for _, r := range ruleCascade {
		groups := r.re.FindStringSubmatch(q)
		if groups == nil {
			continue
		}
		if parsed, ok := r.extract(groups); ok {
			return parsed
		}
	}
	return ParsedQuery{Intent: IntentUnknown}
}

func extractTopYearN(groups []string) (ParsedQuery, bool) {
	n, _ := strconv.Atoi(groups[1])
	year, _ := strconv.Atoi(groups[2])
	return ParsedQuery{Intent: IntentTopSongs, N: ClampN(n), Year: year}, true
}

func extractTopYearDefault(groups []string) (ParsedQuery, bool) {
	year, _ := strconv.Atoi(groups[1])
	return ParsedQuery{Intent: IntentTopSongs, N: DefaultTopN, Year: year}, true
}

func extractDecade(groups []string) (ParsedQuery, bool) {
	start := NormalizeDecade(groups[1])
	if start == 0 {
		return ParsedQuery{}, false
	}
	return ParsedQuery{Intent: IntentTopSongsDecade, DecadeStart: start, N: DefaultDecadeN}, true
}

func extractDurationWithArtist(groups []string) (ParsedQuery, bool) {
	song := StripStopWords(groups[1], artistStopRE)
	artist := StripStopWords(groups[2], artistStopRE)
	if song == "" || artist == "" {
		return ParsedQuery{}, false
	}
	return ParsedQuery{Intent: IntentSongDurationWithArtist, Song: song, Artist: artist}, true
}

func extractDuration(groups []string) (ParsedQuery, bool) {
	song := StripStopWords(groups[1], songStopRE)
	if song == "" {
		return ParsedQuery{}, false
	}
	return ParsedQuery{Intent: IntentSongDuration, Song: song}, true
}

// NormalizeDecade maps a decade token to its start year: two-digit tokens
// of 50 and above land in the 1900s, below 50 in the 2000s, and four-digit
// tokens pass through. Returns 0 for anything unusable.
func NormalizeDecade(token string) int {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0
	}
	switch len(token) {
	case 2:
		if v >= 50 {
			return 1900 + v
		}
		return 2000 + v
	case 4:
		return v
	default:
		return 0
	}
}

// StripStopWords removes whole-word stop words and collapses whitespace.
// The operation is idempotent.
func StripStopWords(s string, stopRE *regexp.Regexp) string {
	s = stopRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

// ClampN bounds a requested result count to [1, MaxTopN], substituting the
// default for nonsense values.
func ClampN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

func stopWordRegexp(words []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)
}

func compileRules(patterns []string, extract func([]string) (ParsedQuery, bool)) []rule {
	rules := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, rule{re: regexp.MustCompile(p), extract: extract})
	}
	return rules
}

func concat(groups ...[]rule) []rule {
	var out []rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
