// Command yeargen precomputes Hebrew year records into the SQLite
// cache used by the API, and prints a summary of what it stored.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/avramz/luach-api/internal/database"
	"github.com/avramz/luach-api/internal/hebcal"
)

func main() {
	dbPath := flag.String("db", "./data/luach.db", "Path to the SQLite database")
	from := flag.Int("from", 5700, "First Hebrew year to cache")
	to := flag.Int("to", 5900, "Last Hebrew year to cache (inclusive)")
	quiet := flag.Bool("quiet", false, "Suppress the per-year table")
	flag.Parse()

	if *from > *to {
		fmt.Fprintf(os.Stderr, "yeargen: -from %d exceeds -to %d\n", *from, *to)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	db, err := database.Open(database.DefaultConfig(*dbPath), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yeargen: open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "yeargen: migrate: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Hebrew year cache generator: %d..%d ===\n\n", *from, *to)

	leapCount := 0
	for year := *from; year <= *to; year++ {
		record := database.ComputeYear(year)
		if err := db.UpsertYear(ctx, record); err != nil {
			fmt.Fprintf(os.Stderr, "yeargen: cache year %d: %v\n", year, err)
			os.Exit(1)
		}

		if record.IsLeap {
			leapCount++
		}

		if !*quiet {
			rosh := hebcal.HebrewDate{Year: year, Month: hebcal.Tishrei, Day: 1}
			kind := "common"
			if record.IsLeap {
				kind = "leap"
			}
			fmt.Printf("  %d  %3d days  %-6s  Rosh Hashana %s\n",
				year, record.Length, kind, rosh.Gregorian())
		}
	}

	total := *to - *from + 1
	fmt.Printf("\nCached %d years (%d leap) in %s\n", total, leapCount, *dbPath)
}
