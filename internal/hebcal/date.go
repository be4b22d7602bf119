package hebcal

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is returned when a (year, month, day) triple is not a
// realizable calendar date.
var ErrInvalidDate = errors.New("invalid date")

// epochOffset bridges the two day axes: a Hebrew day number (days since
// the molad tohu epoch) equals the Rata Die number plus this constant.
// Day 1 of the Hebrew axis is 1 Tishrei 1 = 7 September -3760, which is
// Rata Die -1373427.
const epochOffset = 1373428

// HebrewDate is an immutable Hebrew calendar date. Month numbering is
// Nisan-first (see the month constants); Tishrei, month 7, starts the
// year. Values built through NewHebrewDate are always realizable dates.
type HebrewDate struct {
	Year  int
	Month int // 1..13
	Day   int // 1..30
}

// NewHebrewDate validates the triple against the year's actual month
// table and returns ErrInvalidDate for anything unrealizable: month 13
// in a common year, day 30 in a 29-day month, and so on.
func NewHebrewDate(year, month, day int) (HebrewDate, error) {
	months := YearMonths(year)
	if month < 1 || month > len(months) {
		return HebrewDate{}, fmt.Errorf("%w: year %d has no month %d", ErrInvalidDate, year, month)
	}
	if day < 1 || day > months[month-1] {
		return HebrewDate{}, fmt.Errorf("%w: %s %d has %d days, not %d",
			ErrInvalidDate, MonthName(year, month), year, months[month-1], day)
	}
	return HebrewDate{Year: year, Month: month, Day: day}, nil
}

// String formats the date as YYYY-MonthName-DD with zero padding, e.g.
// "5785-Tevet-01".
func (d HebrewDate) String() string {
	return fmt.Sprintf("%04d-%s-%02d", d.Year, MonthName(d.Year, d.Month), d.Day)
}

// FromDayNumber converts a day number on the Hebrew axis (days since
// epoch) to a Hebrew date.
//
// The year is estimated by dividing by 36525/100, a near enough stand-in
// for the mean Hebrew year of about 365.2468 days, then stepped until
// YearStart brackets the day; YearStart is monotonic in the year so the
// walk terminates. The month walk starts at Tishrei
// and wraps from the last month back to Nisan.
func FromDayNumber(ed int) HebrewDate {
	year := int(floorDiv(int64(ed)*100, 36525))
	for YearStart(year) < ed {
		year++
	}
	for YearStart(year) > ed {
		year--
	}

	months := YearMonths(year)
	days := YearStart(year)
	month := Tishrei
	for {
		length := months[month-1]
		if days+length > ed {
			break
		}
		days += length
		month++
		if month > len(months) {
			month = Nisan
		}
		if month == Tishrei {
			// The table sums to YearLength, so walking a full
			// year without landing is a broken rule table.
			panic(fmt.Sprintf("hebcal: month table overrun for day %d in year %d", ed, year))
		}
	}

	return HebrewDate{Year: year, Month: month, Day: ed - days + 1}
}

// DayNumber converts the date to its day number on the Hebrew axis.
// Inverse of FromDayNumber for valid dates.
func (d HebrewDate) DayNumber() int {
	months := YearMonths(d.Year)
	days := YearStart(d.Year) - 1
	month := Tishrei
	for month != d.Month {
		days += months[month-1]
		month++
		if month > len(months) {
			month = Nisan
		}
		if month == Tishrei {
			panic(fmt.Sprintf("hebcal: month %d not reachable in year %d", d.Month, d.Year))
		}
	}
	return days + d.Day
}

// FromGregorian converts a Gregorian date to the Hebrew date of the
// same day. The two calendars meet only on the shared day-number axis.
func FromGregorian(g GregorianDate) HebrewDate {
	return FromDayNumber(g.RataDie() + epochOffset)
}

// Gregorian converts the Hebrew date to the Gregorian date of the same
// day.
func (d HebrewDate) Gregorian() GregorianDate {
	return GregorianFromRataDie(d.DayNumber() - epochOffset)
}
