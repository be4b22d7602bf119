package hebcal

import "time"

// Clock supplies today's Gregorian date. The conversion engine never
// reads the system clock itself; callers inject a Clock so everything
// downstream of "today" stays a pure function of its inputs.
type Clock interface {
	Today() GregorianDate
}

// SystemClock reads the current date from the wall clock in the given
// location, or local time when Location is nil.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Today() GregorianDate {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	return GregorianDate{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// FixedClock always reports the same date. Useful in tests and for
// reproducing a conversion.
type FixedClock struct {
	Date GregorianDate
}

func (c FixedClock) Today() GregorianDate {
	return c.Date
}
