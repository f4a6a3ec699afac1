// Package match finds songs in the chart catalog for a free-text query.
//
// Matching runs as a three-tier cascade with strict priority: exact title
// equality, then substring containment, then fuzzy partial-ratio scoring.
// A lower tier is only consulted while the result set is still short of
// the requested size, so an exact hit always outranks a similarity guess.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/hurttlocker/chartbot/internal/agg"
)

// Tier identifies which cascade stage produced a match.
type Tier string

const (
	TierExact    Tier = "exact"
	TierContains Tier = "contains"
	TierFuzzy    Tier = "fuzzy"
)

const (
	// DefaultFuzzyThreshold is the minimum partial-ratio score (0-100) a
	// fuzzy candidate needs to qualify.
	DefaultFuzzyThreshold = 60

	// DefaultMaxResults bounds the result set when the caller does not.
	DefaultMaxResults = 5

	scoreExact    = 100
	scoreContains = 85
)

// Result is one matched song with its chart-run summary and match quality.
type Result struct {
	Song         string `json:"song"`
	Artist       string `json:"artist"`
	WeeksOnChart int    `json:"weeks_on_chart"`
	BestRank     int    `json:"best_rank"`
	PeakRank     int    `json:"peak_rank"`
	Year         int    `json:"year"`
	Score        int    `json:"match_score"` // 0-100
	Tier         Tier   `json:"match_type"`
}

// Options configures a single Find call.
type Options struct {
	Artist         string // optional artist substring filter, applied before all tiers
	MaxResults     int    // 0 means DefaultMaxResults
	FuzzyThreshold int    // 0 means DefaultFuzzyThreshold
}

// Engine matches queries against a fixed song catalog.
type Engine struct {
	catalog []agg.SongAggregate
}

// NewEngine builds a match engine over the full-dataset catalog, one row
// per unique (song, artist) pair.
func NewEngine(catalog []agg.SongAggregate) *Engine {
	return &Engine{catalog: catalog}
}

// Find returns up to opts.MaxResults matches for the query, exact tier
// first, then contains, then fuzzy sorted by descending score. An empty
// or whitespace query returns nil.
func (e *Engine) Find(query string, opts Options) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.FuzzyThreshold <= 0 {
		opts.FuzzyThreshold = DefaultFuzzyThreshold
	}

	candidates := e.catalog
	if artist := strings.ToLower(strings.TrimSpace(opts.Artist)); artist != "" {
		filtered := make([]agg.SongAggregate, 0, len(candidates))
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c.Artist), artist) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	queryLower := strings.ToLower(query)
	matches := make([]Result, 0, opts.MaxResults)
	matchedTitles := make(map[string]bool)

	// Tier 1: exact title equality.
	for _, c := range candidates {
		if strings.ToLower(c.Song) == queryLower {
			matches = append(matches, toResult(c, scoreExact, TierExact))
			matchedTitles[strings.ToLower(c.Song)] = true
		}
	}

	// Tier 2: title contains the query, exact titles excluded.
	if len(matches) < opts.MaxResults {
		for _, c := range candidates {
			if len(matches) >= opts.MaxResults {
				break
			}
			titleLower := strings.ToLower(c.Song)
			if titleLower == queryLower || !strings.Contains(titleLower, queryLower) {
				continue
			}
			matches = append(matches, toResult(c, scoreContains, TierContains))
			matchedTitles[titleLower] = true
		}
	}

	// Tier 3: fuzzy partial-ratio over titles not matched yet.
	if len(matches) < opts.MaxResults {
		var fuzzy []Result
		for _, c := range candidates {
			titleLower := strings.ToLower(c.Song)
			if matchedTitles[titleLower] {
				continue
			}
			score := PartialRatio(queryLower, titleLower)
			if score >= opts.FuzzyThreshold {
				fuzzy = append(fuzzy, toResult(c, score, TierFuzzy))
				matchedTitles[titleLower] = true
			}
		}
		sort.SliceStable(fuzzy, func(i, j int) bool { return fuzzy[i].Score > fuzzy[j].Score })
		for _, m := range fuzzy {
			if len(matches) >= opts.MaxResults {
				break
			}
			matches = append(matches, m)
		}
	}

	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches
}

func toResult(c agg.SongAggregate, score int, tier Tier) Result {
	return Result{
		Song:         c.Song,
		Artist:       c.Artist,
		WeeksOnChart: c.WeeksOnChart,
		BestRank:     c.BestRank,
		PeakRank:     c.PeakRank,
		Year:         c.FirstYear,
		Score:        score,
		Tier:         tier,
	}
}

// PartialRatio scores how well the shorter string matches the best-aligned
// same-length window of the longer one, 0-100. Equal-length comparison is
// a plain normalized edit-distance ratio; a substring hit scores 100.
func PartialRatio(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}
	if len(ar) > len(br) {
		ar, br = br, ar
	}

	short := string(ar)
	best := 0.0
	for i := 0; i+len(ar) <= len(br); i++ {
		window := string(br[i : i+len(ar)])
		dist := levenshtein.ComputeDistance(short, window)
		ratio := 1 - float64(dist)/float64(len(ar))
		if ratio > best {
			best = ratio
		}
		if best == 1 {
			break
		}
	}
	return int(math.Round(best * 100))
}
