package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1HebrewYears,
}

// migrationV1HebrewYears creates the year cache.
//
// One row per Hebrew year. The row is a pure function of the year
// number, so there is no freshness problem: a row is either present and
// correct or absent and computed on demand.
const migrationV1HebrewYears = `
-- Migration 001: Hebrew year cache

CREATE TABLE IF NOT EXISTS hebrew_years (
    year INTEGER PRIMARY KEY,

    -- Day since epoch of 1 Tishrei, after the postponement rules
    year_start INTEGER NOT NULL,

    -- Total days: 353/354/355 for common years, 383/384/385 for leap
    length INTEGER NOT NULL CHECK (length IN (353, 354, 355, 383, 384, 385)),

    is_leap INTEGER NOT NULL CHECK (is_leap IN (0, 1)),

    -- Molad of Tishrei, decomposed: day since epoch, hour past 6pm,
    -- chalakim of the hour
    molad_day INTEGER NOT NULL,
    molad_hour INTEGER NOT NULL CHECK (molad_hour BETWEEN 0 AND 23),
    molad_parts INTEGER NOT NULL CHECK (molad_parts BETWEEN 0 AND 1079),

    -- JSON array of month lengths, Nisan first
    month_lengths TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_hebrew_years_start ON hebrew_years(year_start);
`
