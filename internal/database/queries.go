package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return t
		}
	}

	return time.Time{}
}

// =============================================================================
// Hebrew Year Queries
// =============================================================================

const yearColumns = `
	year, year_start, length, is_leap,
	molad_day, molad_hour, molad_parts,
	month_lengths, created_at, updated_at
`

func scanYear(row *sql.Row) (*HebrewYear, error) {
	var y HebrewYear
	var isLeap int
	var monthsJSON string
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&y.Year,
		&y.YearStart,
		&y.Length,
		&isLeap,
		&y.MoladDay,
		&y.MoladHour,
		&y.MoladParts,
		&monthsJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan hebrew year: %w", err)
	}

	y.IsLeap = isLeap != 0
	y.MonthLengths, err = UnmarshalMonthLengths(monthsJSON)
	if err != nil {
		return nil, err
	}
	y.CreatedAt = parseTimestamp(createdAt)
	y.UpdatedAt = parseTimestamp(updatedAt)

	return &y, nil
}

// GetYear retrieves the cached row for a Hebrew year.
// Returns ErrNotFound if the year has not been cached.
func (db *DB) GetYear(ctx context.Context, year int) (*HebrewYear, error) {
	query := `SELECT ` + yearColumns + ` FROM hebrew_years WHERE year = ?`
	return scanYear(db.QueryRowContext(ctx, query, year))
}

// execer is the subset of database/sql shared by *DB and *Tx, so the
// year upsert can run standalone or inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// UpsertYear inserts or replaces the cached row for a Hebrew year.
func (db *DB) UpsertYear(ctx context.Context, y *HebrewYear) error {
	return upsertYear(ctx, db, y)
}

// UpsertYear inserts or replaces the cached row within the transaction.
func (tx *Tx) UpsertYear(ctx context.Context, y *HebrewYear) error {
	return upsertYear(ctx, tx, y)
}

func upsertYear(ctx context.Context, ex execer, y *HebrewYear) error {
	monthsJSON, err := MarshalMonthLengths(y.MonthLengths)
	if err != nil {
		return err
	}

	isLeap := 0
	if y.IsLeap {
		isLeap = 1
	}

	query := `
		INSERT INTO hebrew_years (
			year, year_start, length, is_leap,
			molad_day, molad_hour, molad_parts, month_lengths
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year) DO UPDATE SET
			year_start = excluded.year_start,
			length = excluded.length,
			is_leap = excluded.is_leap,
			molad_day = excluded.molad_day,
			molad_hour = excluded.molad_hour,
			molad_parts = excluded.molad_parts,
			month_lengths = excluded.month_lengths,
			updated_at = datetime('now')
	`

	_, err = ex.ExecContext(ctx, query,
		y.Year, y.YearStart, y.Length, isLeap,
		y.MoladDay, y.MoladHour, y.MoladParts, monthsJSON,
	)
	if err != nil {
		return fmt.Errorf("upsert hebrew year %d: %w", y.Year, err)
	}

	return nil
}

// ListYears retrieves cached years in [from, to] inclusive, ordered by
// year. Years missing from the cache are simply absent from the result.
func (db *DB) ListYears(ctx context.Context, from, to int) ([]HebrewYear, error) {
	query := `
		SELECT ` + yearColumns + `
		FROM hebrew_years
		WHERE year BETWEEN ? AND ?
		ORDER BY year
	`

	rows, err := db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query years %d..%d: %w", from, to, err)
	}
	defer rows.Close()

	var years []HebrewYear
	for rows.Next() {
		var y HebrewYear
		var isLeap int
		var monthsJSON string
		var createdAt, updatedAt sql.NullString

		err := rows.Scan(
			&y.Year, &y.YearStart, &y.Length, &isLeap,
			&y.MoladDay, &y.MoladHour, &y.MoladParts,
			&monthsJSON, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan hebrew year: %w", err)
		}

		y.IsLeap = isLeap != 0
		y.MonthLengths, err = UnmarshalMonthLengths(monthsJSON)
		if err != nil {
			return nil, err
		}
		y.CreatedAt = parseTimestamp(createdAt)
		y.UpdatedAt = parseTimestamp(updatedAt)

		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}

	return years, nil
}

// CountYears returns the number of cached years.
func (db *DB) CountYears(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hebrew_years").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count years: %w", err)
	}
	return count, nil
}
