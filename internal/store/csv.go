package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names expected in the cleaned Billboard CSV export.
var requiredColumns = []string{"date", "rank", "song", "artist", "peak-rank", "weeks-on-board"}

const csvDateLayout = "2006-01-02"

// LoadCSV reads a cleaned chart dataset from a CSV file. The first row must
// be a header containing the required columns; "last-week" and "year" are
// optional (year is derived from the date when absent). Rows with a missing
// song or artist are skipped, matching the upstream cleaning step.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := col[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset %s missing required columns: %s", path, strings.Join(missing, ", "))
	}

	entries := make([]ChartEntry, 0, len(records)-1)
	for i, row := range records[1:] {
		e, ok, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !ok {
			continue
		}
		entries = append(entries, e)
	}

	return New(entries)
}

// parseRow converts one CSV row into a ChartEntry. Returns ok=false for
// rows the cleaning rules drop (empty song or artist).
func parseRow(row []string, col map[string]int) (ChartEntry, bool, error) {
	field := func(name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	e := ChartEntry{
		Song:   field("song"),
		Artist: field("artist"),
	}
	if e.Song == "" || e.Artist == "" {
		return ChartEntry{}, false, nil
	}

	date, err := time.Parse(csvDateLayout, field("date"))
	if err != nil {
		return ChartEntry{}, false, fmt.Errorf("parsing date %q: %w", field("date"), err)
	}
	e.Date = date
	e.Year = date.Year()

	if e.Rank, err = strconv.Atoi(field("rank")); err != nil {
		return ChartEntry{}, false, fmt.Errorf("parsing rank %q: %w", field("rank"), err)
	}
	if e.PeakRank, err = strconv.Atoi(field("peak-rank")); err != nil {
		return ChartEntry{}, false, fmt.Errorf("parsing peak-rank %q: %w", field("peak-rank"), err)
	}
	if e.WeeksOnBoard, err = strconv.Atoi(field("weeks-on-board")); err != nil {
		return ChartEntry{}, false, fmt.Errorf("parsing weeks-on-board %q: %w", field("weeks-on-board"), err)
	}

	// last-week is blank or 0 for chart debuts
	if lw := field("last-week"); lw != "" {
		if v, err := strconv.ParseFloat(lw, 64); err == nil {
			e.LastWeekRank = int(v)
		}
	}
	if y := field("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			e.Year = v
		}
	}

	return e, true, nil
}
