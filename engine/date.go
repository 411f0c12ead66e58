// Package engine implements the reading progress and streak computation
// core: calendar date arithmetic, the canonical streak calculator, the
// forward-only reading cursor, unique ayat coverage, and hasanat accounting.
// Everything here is a pure function over explicitly passed-in state, so the
// same code serves HTTP handlers, the reconciliation job, and tests.
package engine

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time or timezone component. All streak and
// check-in comparisons operate on Date values, never on timestamps; a reading
// at 23:59 and one at 00:05 the next minute fall on different dates and are
// only consecutive when the calendar gap is exactly one day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// dateLayout is the wire format for dates crossing the persistence and HTTP
// boundaries.
const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// DateOf truncates a time to its calendar date in the time's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today resolves the current calendar date in the given IANA timezone. The
// host timezone is never consulted; resolving "today" server-side in UTC was
// a recurring off-by-one source in this system.
func Today(tz string) (Date, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Date{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return DateOf(time.Now().In(loc)), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Time returns the date at midnight UTC. Using UTC midnights keeps day
// subtraction exact; no DST transition can make a day shorter or longer.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.epochDays() < other.epochDays()
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.epochDays() > other.epochDays()
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) epochDays() int {
	return int(d.Time().Unix() / 86400)
}

// DayDifference returns the signed whole-day difference a - b using calendar
// arithmetic.
func DayDifference(a, b Date) int {
	return a.epochDays() - b.epochDays()
}

// IsConsecutive reports whether later is exactly one calendar day after
// earlier.
func IsConsecutive(later, earlier Date) bool {
	return DayDifference(later, earlier) == 1
}
