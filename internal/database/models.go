// Package database provides the SQLite cache of computed Hebrew
// calendar years for the luach API.
package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avramz/luach-api/internal/hebcal"
)

// HebrewYear is one cached row of per-year calendar facts. Everything
// here is derivable from the year number alone; the cache exists so
// browsing endpoints can list ranges of years without recomputing them
// request after request.
type HebrewYear struct {
	Year         int       `json:"year"`
	YearStart    int       `json:"year_start"` // day since epoch of 1 Tishrei
	Length       int       `json:"length"`     // 353..355 or 383..385
	IsLeap       bool      `json:"is_leap"`
	MoladDay     int       `json:"molad_day"`
	MoladHour    int       `json:"molad_hour"`
	MoladParts   int       `json:"molad_parts"`
	MonthLengths []int     `json:"month_lengths"` // indexed by month-1, Nisan first
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ComputeYear builds the cache row for a Hebrew year from the
// calendrical engine.
func ComputeYear(year int) *HebrewYear {
	day, hour, parts := hebcal.MoladComponents(year)
	return &HebrewYear{
		Year:         year,
		YearStart:    hebcal.YearStart(year),
		Length:       hebcal.YearLength(year),
		IsLeap:       hebcal.IsLeapYear(year),
		MoladDay:     day,
		MoladHour:    hour,
		MoladParts:   parts,
		MonthLengths: hebcal.YearMonths(year),
	}
}

// MarshalMonthLengths encodes a month-length table as a JSON array for
// storage in a TEXT column.
func MarshalMonthLengths(months []int) (string, error) {
	data, err := json.Marshal(months)
	if err != nil {
		return "", fmt.Errorf("marshal month lengths: %w", err)
	}
	return string(data), nil
}

// UnmarshalMonthLengths decodes a stored JSON month-length array.
func UnmarshalMonthLengths(data string) ([]int, error) {
	var months []int
	if err := json.Unmarshal([]byte(data), &months); err != nil {
		return nil, fmt.Errorf("unmarshal month lengths: %w", err)
	}
	return months, nil
}
