package hebcal

import (
	"fmt"
	"time"
)

// GregorianDate is an immutable proleptic Gregorian calendar date.
// The Gregorian calendar was only adopted in 1582; dates before that
// are valid values but extrapolated backwards.
type GregorianDate struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
}

// String formats the date as YYYY-MM-DD with zero padding.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day)
}

// ParseGregorian parses a YYYY-MM-DD string into a validated date.
func ParseGregorian(s string) (GregorianDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return GregorianDate{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	g := GregorianDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	if !g.Valid() {
		return GregorianDate{}, fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	return g, nil
}

// IsGregorianLeapYear reports whether a Gregorian year has a February
// 29, under the proleptic rule.
func IsGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Cumulative days before the first of each month in a common year,
// indexed by month.
var daysBeforeMonth = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

func gregorianMonthLength(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsGregorianLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Valid reports whether the date is calendrically realizable: month in
// 1..12 and day within the actual length of that month for that year.
func (g GregorianDate) Valid() bool {
	if g.Month < 1 || g.Month > 12 || g.Day < 1 {
		return false
	}
	return g.Day <= gregorianMonthLength(g.Year, g.Month)
}

// leapDaysBefore counts the leap days in Gregorian years 1..year-1:
// every fourth year, skipping centuries, restoring every fourth
// century.
func leapDaysBefore(year int) int {
	y := int64(year - 1)
	return int(floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400))
}

// RataDie converts the date to its Rata Die day number, where day 1 is
// January 1 of year 1. The date is assumed valid; construct through
// ParseGregorian or check Valid first.
func (g GregorianDate) RataDie() int {
	leaps := leapDaysBefore(g.Year)
	if IsGregorianLeapYear(g.Year) && g.Month >= 3 {
		leaps++
	}
	return (g.Year-1)*365 + daysBeforeMonth[g.Month] + g.Day + leaps
}

// gregorianNewYear returns the Rata Die number of January 1 of a year.
func gregorianNewYear(year int) int {
	return (year-1)*365 + leapDaysBefore(year) + 1
}

// GregorianFromRataDie converts a Rata Die day number back to a
// Gregorian date. The year is estimated from the mean Gregorian year of
// 146097 days per 400 years, then corrected by at most a step in either
// direction; January 1 day numbers are monotonic in the year, so the
// search terminates.
func GregorianFromRataDie(rd int) GregorianDate {
	year := int(floorDiv(int64(rd)*400, 146097)) + 1
	for gregorianNewYear(year) < rd {
		year++
	}
	for gregorianNewYear(year) > rd {
		year--
	}

	dayOfYear := rd - gregorianNewYear(year) + 1
	month := 1
	for {
		length := gregorianMonthLength(year, month)
		if dayOfYear <= length {
			break
		}
		dayOfYear -= length
		month++
	}

	return GregorianDate{Year: year, Month: month, Day: dayOfYear}
}
