// Command luach converts dates between the Gregorian and Hebrew
// calendars.
//
// Usage:
//
//	luach                      convert today's date
//	luach 2025 1 1             convert a Gregorian date
//	luach -hebrew 5785 10 1    convert a Hebrew date (Nisan = 1)
//	luach -molad 5785          print the molad of a Hebrew year
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/avramz/luach-api/internal/hebcal"
)

func main() {
	hebrew := flag.Bool("hebrew", false, "treat arguments as a Hebrew date and convert to Gregorian")
	molad := flag.Bool("molad", false, "print the molad of the given Hebrew year")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()

	switch {
	case *molad:
		if len(args) != 1 {
			fail("the -molad flag takes exactly one argument: a Hebrew year")
		}
		year := parseArg(args[0], "year")
		fmt.Println(hebcal.FormatMolad(year))

	case len(args) == 0:
		today := hebcal.SystemClock{}.Today()
		fmt.Printf("%s = %s\n", today, hebcal.FromGregorian(today))

	case len(args) == 3:
		year := parseArg(args[0], "year")
		month := parseArg(args[1], "month")
		day := parseArg(args[2], "day")

		if *hebrew {
			date, err := hebcal.NewHebrewDate(year, month, day)
			if err != nil {
				fail(err.Error())
			}
			fmt.Printf("%s = %s\n", date, date.Gregorian())
			return
		}

		date := hebcal.GregorianDate{Year: year, Month: month, Day: day}
		if !date.Valid() {
			fail(fmt.Sprintf("invalid Gregorian date: %s", date))
		}
		fmt.Printf("%s = %s\n", date, hebcal.FromGregorian(date))

	default:
		usage()
		os.Exit(1)
	}
}

func parseArg(s, name string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		fail(fmt.Sprintf("%s must be an integer, got %q", name, s))
	}
	return n
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, "luach:", msg)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  luach                      convert today's date
  luach YEAR MONTH DAY       convert a Gregorian date to Hebrew
  luach -hebrew YEAR MONTH DAY
                             convert a Hebrew date to Gregorian (Nisan = 1)
  luach -molad YEAR          print the molad of a Hebrew year
`)
}
