package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default SQLite snapshot location.
const DefaultDBPath = "~/.chartbot/chartbot.db"

// insertBatchSize bounds the number of rows per insert transaction.
const insertBatchSize = 500

const sqliteDateLayout = "2006-01-02"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS chart_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	rank INTEGER NOT NULL,
	song TEXT NOT NULL,
	artist TEXT NOT NULL,
	last_week_rank INTEGER NOT NULL DEFAULT 0,
	peak_rank INTEGER NOT NULL,
	weeks_on_board INTEGER NOT NULL,
	year INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chart_entries_year ON chart_entries(year);
CREATE INDEX IF NOT EXISTS idx_chart_entries_song ON chart_entries(song, artist);
`

// OpenSQLite loads the full entry set from a SQLite snapshot created by
// ImportSQLite. The database is read once and closed; the returned Store
// is purely in-memory like every other Store.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT date, rank, song, artist, last_week_rank, peak_rank, weeks_on_board, year
		 FROM chart_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying chart entries: %w", err)
	}
	defer rows.Close()

	var entries []ChartEntry
	for rows.Next() {
		var e ChartEntry
		var date string
		if err := rows.Scan(&date, &e.Rank, &e.Song, &e.Artist, &e.LastWeekRank, &e.PeakRank, &e.WeeksOnBoard, &e.Year); err != nil {
			return nil, fmt.Errorf("scanning chart entry: %w", err)
		}
		if t, err := time.Parse(sqliteDateLayout, date); err == nil {
			e.Date = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chart entries: %w", err)
	}

	return New(entries)
}

// ImportSQLite writes the store's entry set into a SQLite snapshot at path,
// replacing any existing snapshot content. Later runs can open the snapshot
// directly instead of re-parsing the CSV.
func ImportSQLite(ctx context.Context, path string, s *Store) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM chart_entries`); err != nil {
		return fmt.Errorf("clearing previous snapshot: %w", err)
	}

	entries := s.Entries()
	for start := 0; start < len(entries); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := insertBatch(ctx, db, entries[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertBatch(ctx context.Context, db *sql.DB, batch []ChartEntry) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chart_entries (date, rank, song, artist, last_week_rank, peak_rank, weeks_on_board, year)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range batch {
		_, err := stmt.ExecContext(ctx,
			e.Date.Format(sqliteDateLayout), e.Rank, e.Song, e.Artist,
			e.LastWeekRank, e.PeakRank, e.WeeksOnBoard, e.Year)
		if err != nil {
			return fmt.Errorf("inserting entry %q by %q: %w", e.Song, e.Artist, err)
		}
	}
	return tx.Commit()
}
