package date

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Statement dates are printed either "Jan 2, 2006" or, on older pages, without the comma.
const (
	statementFormat      = "Jan 2, 2006"
	statementFormatShort = "Jan 2 2006"
)

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the calendar day of t as seen in loc.
func Of(t time.Time, loc *time.Location) Date { return New(t.In(loc).Date()) }

// In returns the instant at which the day d starts in loc.
func (d Date) In(loc *time.Location) time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, loc) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// ParseStatement parses a date as printed on a statement page, like "Mar 31, 2023" or
// "Mar 31 2023".
func ParseStatement(str string) (Date, error) {
	str = strings.TrimSpace(str)
	layout := statementFormat
	if !strings.Contains(str, ",") {
		layout = statementFormatShort
	}
	on, err := time.Parse(layout, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid statement date %q: %w", str, err)
	}
	return New(on.Date()), nil
}

// Instant parses a statement date and returns the UTC instant of its local midnight in loc.
func Instant(str string, loc *time.Location) (time.Time, error) {
	d, err := ParseStatement(str)
	if err != nil {
		return time.Time{}, err
	}
	return d.In(loc).UTC(), nil
}
