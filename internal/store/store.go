// Package store provides the read-only chart record store for ChartBot.
//
// Entries are loaded once, from a cleaned CSV export or from a SQLite
// snapshot, and are immutable for the lifetime of the process. Because
// nothing mutates the store after load, it is safe to share across
// concurrent readers without locking.
package store

import (
	"fmt"
	"time"
)

// ChartEntry is a single weekly chart appearance: one song at one rank on
// one chart date. A song accumulates many entries over its chart run.
type ChartEntry struct {
	Date         time.Time `json:"date"`
	Rank         int       `json:"rank"` // 1-100, lower is better
	Song         string    `json:"song"`
	Artist       string    `json:"artist"`
	LastWeekRank int       `json:"last_week_rank"` // 0 when new on the chart
	PeakRank     int       `json:"peak_rank"`
	WeeksOnBoard int       `json:"weeks_on_board"`
	Year         int       `json:"year"`
}

// Stats holds summary statistics about the loaded dataset.
type Stats struct {
	TotalEntries  int `json:"total_entries"`
	UniqueSongs   int `json:"unique_songs"`
	UniqueArtists int `json:"unique_artists"`
	MinYear       int `json:"min_year"`
	MaxYear       int `json:"max_year"`
}

// Store is an immutable in-memory collection of chart entries.
type Store struct {
	entries []ChartEntry
	minYear int
	maxYear int
}

// New builds a Store from a slice of entries. Entries with a zero Year get
// it derived from Date. The slice is owned by the Store after the call.
func New(entries []ChartEntry) (*Store, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no chart entries to load")
	}

	s := &Store{entries: entries}
	for i := range s.entries {
		if s.entries[i].Year == 0 && !s.entries[i].Date.IsZero() {
			s.entries[i].Year = s.entries[i].Date.Year()
		}
		y := s.entries[i].Year
		if s.minYear == 0 || y < s.minYear {
			s.minYear = y
		}
		if y > s.maxYear {
			s.maxYear = y
		}
	}
	return s, nil
}

// Entries returns the full entry set. Callers must not mutate it.
func (s *Store) Entries() []ChartEntry {
	return s.entries
}

// MinYear returns the earliest chart year in the dataset.
func (s *Store) MinYear() int { return s.minYear }

// MaxYear returns the latest chart year in the dataset.
func (s *Store) MaxYear() int { return s.maxYear }

// ValidYear reports whether year falls inside the dataset's coverage.
func (s *Store) ValidYear(year int) bool {
	return year >= s.minYear && year <= s.maxYear
}

// Stats computes summary statistics over the entry set.
func (s *Store) Stats() Stats {
	songs := make(map[string]struct{})
	artists := make(map[string]struct{})
	for _, e := range s.entries {
		songs[e.Song+"\x00"+e.Artist] = struct{}{}
		artists[e.Artist] = struct{}{}
	}
	return Stats{
		TotalEntries:  len(s.entries),
		UniqueSongs:   len(songs),
		UniqueArtists: len(artists),
		MinYear:       s.minYear,
		MaxYear:       s.maxYear,
	}
}
