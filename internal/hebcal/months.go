package hebcal

import "fmt"

// Month numbering follows the Torah ordering: 1 = Nisan through
// 6 = Elul, 7 = Tishrei (the civil new year) through 12 = Adar, with
// 13 = Adar II in leap years. In a leap year month 12 is Adar I.
const (
	Nisan    = 1
	Iyar     = 2
	Sivan    = 3
	Tammuz   = 4
	Av       = 5
	Elul     = 6
	Tishrei  = 7
	Cheshvan = 8
	Kislev   = 9
	Tevet    = 10
	Shevat   = 11
	Adar     = 12
	AdarII   = 13
)

var monthNames = [13]string{
	"Nisan", "Iyar", "Sivan", "Tammuz", "Av", "Elul",
	"Tishrei", "Cheshvan", "Kislev", "Tevet", "Shevat",
	"Adar", "Adar II",
}

// MonthName returns the English name of a month in the given year.
// The 12th month is "Adar" in a common year and "Adar I" in a leap
// year; leap-year status is derived, never stored.
func MonthName(year, month int) string {
	if month < 1 || month > 13 {
		return ""
	}
	if month == Adar && IsLeapYear(year) {
		return "Adar I"
	}
	return monthNames[month-1]
}

// MonthsInYear returns 13 for a leap year and 12 otherwise.
func MonthsInYear(year int) int {
	if IsLeapYear(year) {
		return 13
	}
	return 12
}

// YearMonths returns the length in days of every month of the year,
// indexed by month-1. The slice has 12 entries for a common year and 13
// for a leap year.
//
// Base lengths alternate 30/29 starting from Nisan. Three adjustments
// produce the six valid year lengths: in a complete year
// (length mod 10 == 5) Cheshvan gets 30 days, in a deficient year
// (length mod 10 == 3) Kislev drops to 29, and in a leap year Adar I
// gets 30 days with Adar II appended at 29.
func YearMonths(year int) []int {
	months := []int{30, 29, 30, 29, 30, 29, 30, 29, 30, 29, 30, 29}
	if IsLeapYear(year) {
		months[Adar-1] = 30
		months = append(months, 29)
	}

	switch YearLength(year) % 10 {
	case 3: // deficient
		months[Kislev-1] = 29
	case 5: // complete
		months[Cheshvan-1] = 30
	}

	return months
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatMolad renders the molad of a year in the customary announcement
// form: weekday, civil wall-clock time, and leftover chalakim, e.g.
// "Molad 5785: Mon 15:21 and 13 chalakim". A chelek is 1/18 of a
// minute, so parts split into minutes and a 0-17 remainder; the civil
// hour shifts the 6pm-based hour back onto the midnight clock.
func FormatMolad(year int) string {
	day, hour, parts := MoladComponents(year)
	weekday := int(floorMod(int64(day), 7))
	civilHour := (hour + 18) % 24
	minutes := parts / 18
	chalakim := parts % 18

	return fmt.Sprintf("Molad %d: %s %02d:%02d and %2d chalakim",
		year, weekdayNames[weekday], civilHour, minutes, chalakim)
}
