// Package agg computes per-song chart aggregates over the record store.
//
// Every query works the same way: filter the raw weekly entries with a
// predicate, group the survivors by (song, artist), reduce each group to a
// SongAggregate, sort by best rank, truncate. Results are computed fresh
// per call; only the full-catalog table used by the match engine is built
// once, since the store never changes after load.
package agg

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hurttlocker/chartbot/internal/store"
)

// SongAggregate is the chart-run summary for one (song, artist) pair.
// BestRank and PeakRank are tracked independently: BestRank is the minimum
// of the weekly rank column, PeakRank the minimum of the dataset's own
// peak-rank column. The two can diverge and are never collapsed.
type SongAggregate struct {
	Song         string `json:"song"`
	Artist       string `json:"artist"`
	BestRank     int    `json:"best_rank"`
	PeakRank     int    `json:"peak_rank"`
	WeeksOnChart int    `json:"weeks_on_chart"`
	FirstYear    int    `json:"first_year"`
}

// Engine answers aggregate queries against a single immutable store.
type Engine struct {
	store   *store.Store
	catalog []SongAggregate
}

// NewEngine builds an aggregation engine. The full-catalog aggregate table
// is computed once here and reused by Catalog.
func NewEngine(s *store.Store) *Engine {
	e := &Engine{store: s}
	e.catalog = e.aggregate(func(store.ChartEntry) bool { return true }, 0)
	return e
}

// Catalog returns the aggregate table over the whole dataset, one row per
// unique (song, artist) pair, sorted by best rank. Callers must not mutate it.
func (e *Engine) Catalog() []SongAggregate {
	return e.catalog
}

// TopByYear returns up to n songs that charted in year, best rank first.
func (e *Engine) TopByYear(year, n int) []SongAggregate {
	return e.aggregate(func(c store.ChartEntry) bool { return c.Year == year }, n)
}

// TopByDecade returns up to n songs that charted in the ten-year span
// starting at decadeStart, best rank first.
func (e *Engine) TopByDecade(decadeStart, n int) []SongAggregate {
	decadeEnd := decadeStart + 9
	return e.aggregate(func(c store.ChartEntry) bool {
		return c.Year >= decadeStart && c.Year <= decadeEnd
	}, n)
}

// ByArtist returns up to limit songs whose artist name contains the given
// substring, case-insensitively.
func (e *Engine) ByArtist(artist string, limit int) []SongAggregate {
	needle := strings.ToLower(strings.TrimSpace(artist))
	if needle == "" {
		return nil
	}
	return e.aggregate(func(c store.ChartEntry) bool {
		return strings.Contains(strings.ToLower(c.Artist), needle)
	}, limit)
}

// ByTitlePattern returns up to limit songs whose title matches the given
// case-insensitive regular expression. An invalid pattern degrades to a
// plain substring match rather than failing the query.
func (e *Engine) ByTitlePattern(pattern string, limit int) []SongAggregate {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		return e.aggregate(func(c store.ChartEntry) bool {
			return re.MatchString(c.Song)
		}, limit)
	}
	needle := strings.ToLower(pattern)
	return e.aggregate(func(c store.ChartEntry) bool {
		return strings.Contains(strings.ToLower(c.Song), needle)
	}, limit)
}

// aggregate is the shared filter → group → reduce → sort → truncate path.
// Grouping preserves first-seen order so that best-rank ties break
// deterministically for a given dataset.
func (e *Engine) aggregate(keep func(store.ChartEntry) bool, n int) []SongAggregate {
	byKey := make(map[string]int)
	var out []SongAggregate

	for _, entry := range e.store.Entries() {
		if !keep(entry) {
			continue
		}
		key := strings.ToLower(entry.Song) + "\x00" + strings.ToLower(entry.Artist)
		idx, ok := byKey[key]
		if !ok {
			byKey[key] = len(out)
			out = append(out, SongAggregate{
				Song:         entry.Song,
				Artist:       entry.Artist,
				BestRank:     entry.Rank,
				PeakRank:     entry.PeakRank,
				WeeksOnChart: entry.WeeksOnBoard,
				FirstYear:    entry.Year,
			})
			continue
		}
		a := &out[idx]
		if entry.Rank < a.BestRank {
			a.BestRank = entry.Rank
		}
		if entry.PeakRank < a.PeakRank {
			a.PeakRank = entry.PeakRank
		}
		if entry.WeeksOnBoard > a.WeeksOnChart {
			a.WeeksOnChart = entry.WeeksOnBoard
		}
		if entry.Year < a.FirstYear {
			a.FirstYear = entry.Year
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BestRank < out[j].BestRank
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
