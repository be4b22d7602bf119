// Package hebcal implements the traditional molad-based Hebrew calendar
// arithmetic: molad calculation, the four Rosh Hashana postponement rules,
// year and month lengths, and bidirectional conversion between Hebrew
// dates, proleptic Gregorian dates, and a shared linear day number.
//
// The epoch is the molad tohu: day 1 of the internal day axis is
// 1 Tishrei of Hebrew year 1 (7 September -3760 proleptic Gregorian).
// All arithmetic is exact integer arithmetic in chalakim (1/1080 of an
// hour); there is no floating point anywhere in the package.
//
// Every function is pure and safe for concurrent use.
package hebcal

// Chalakim constants. A chelek is 1/1080 of an hour; a synodic month is
// exactly 29 days, 12 hours, and 793 chalakim.
const (
	partsPerHour = 1080
	partsPerDay  = 24 * partsPerHour

	partsPerMonth    = (29*24+12)*partsPerHour + 793
	partsPerYear     = 12 * partsPerMonth
	partsPerLeapYear = 13 * partsPerMonth

	// A full 19-year Metonic cycle: 12 common years plus 7 leap years.
	partsPerCycle = 12*partsPerYear + 7*partsPerLeapYear

	// The molad tohu, the epoch reference moment: day 1, hour 5
	// (counted from the 6pm day boundary), part 204.
	moladTohu = (24+5)*partsPerHour + 204
)

// floorDiv returns the floor of a/b, unlike Go's native truncating
// division. Day-of-week and chalakim decomposition depend on true
// mathematical floor division for years and day numbers at or before
// the epoch.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns a mod b with the sign of b (always non-negative for
// positive b).
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// IsLeapYear reports whether the Hebrew year has 13 months. Seven of
// every 19 years are leap years, at fixed positions in the Metonic
// cycle. Total over all integers.
func IsLeapYear(year int) bool {
	switch floorMod(int64(year), 19) {
	case 0, 3, 6, 8, 11, 14, 17:
		return true
	}
	return false
}

// Molad returns the mean lunar conjunction of Tishrei of the given
// Hebrew year as a count of chalakim since the epoch.
func Molad(year int) int64 {
	cycles := floorDiv(int64(year-1), 19)
	yearInCycle := int(floorMod(int64(year-1), 19))

	m := int64(moladTohu) + cycles*partsPerCycle
	for y := 1; y <= yearInCycle; y++ {
		if IsLeapYear(y) {
			m += partsPerLeapYear
		} else {
			m += partsPerYear
		}
	}
	return m
}

// MoladComponents decomposes the molad of a year into the day since
// epoch, the hour of day in [0,24), and the part of hour in [0,1080).
// Hour 0 is 6pm: the calendrical day boundary is nightfall, not
// midnight.
func MoladComponents(year int) (day int, hour int, parts int) {
	m := Molad(year)
	day = int(floorDiv(m, partsPerDay))
	hour = int(floorMod(floorDiv(m, partsPerHour), 24))
	parts = int(floorMod(m, partsPerHour))
	return day, hour, parts
}

// YearStart returns the day since epoch on which 1 Tishrei of the given
// year falls, applying the four postponement rules to the raw molad.
func YearStart(year int) int {
	m := Molad(year)
	day := int(floorDiv(m, partsPerDay))
	parts := floorMod(m, partsPerDay)

	rosh := day

	// First rule: a molad at or after noon (18 hours past the 6pm day
	// boundary) postpones Rosh Hashana one day.
	if parts >= 18*partsPerHour {
		rosh++
	}

	// Second rule, lo ADU: Rosh Hashana never falls on Sunday,
	// Wednesday, or Friday.
	switch floorMod(int64(rosh), 7) {
	case 0, 3, 5:
		rosh++
	}

	// Third rule, Ga-Ta-RaD: common year, molad on Tuesday at or after
	// 9h 204p.
	if !IsLeapYear(year) && floorMod(int64(day), 7) == 2 && parts >= 9*partsPerHour+204 {
		rosh = day + 2
	}

	// Fourth rule, Be-TU-TeKaPoT: year after a leap year, molad on
	// Monday at or after 15h 589p.
	if IsLeapYear(year-1) && floorMod(int64(day), 7) == 1 && parts >= 15*partsPerHour+589 {
		rosh = day + 1
	}

	return rosh
}

// YearLength returns the number of days in the Hebrew year. The result
// is always one of 353, 354, 355 (common) or 383, 384, 385 (leap).
func YearLength(year int) int {
	return YearStart(year+1) - YearStart(year)
}
