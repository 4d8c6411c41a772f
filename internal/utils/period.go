package utils

import (
	"fmt"
	"time"
)

// DateLayout is the query-string date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Period is a closed time interval [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period, both ends inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable instant of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// MonthPeriod returns the calendar month containing now.
func MonthPeriod(now time.Time, loc *time.Location) Period {
	now = now.In(loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// ParsePeriod builds a day-aligned period from YYYY-MM-DD strings. An empty
// end defaults to today. An empty start defaults to the first day of the
// end's month.
func ParsePeriod(start, end string, now time.Time, loc *time.Location) (Period, error) {
	p := Period{End: EndOfDay(now, loc)}
	if end != "" {
		d, err := time.ParseInLocation(DateLayout, end, loc)
		if err != nil {
			return Period{}, NewValidationError("fim", "must be a date in YYYY-MM-DD format")
		}
		p.End = EndOfDay(d, loc)
	}
	p.Start = MonthPeriod(p.End, loc).Start
	if start != "" {
		d, err := time.ParseInLocation(DateLayout, start, loc)
		if err != nil {
			return Period{}, NewValidationError("inicio", "must be a date in YYYY-MM-DD format")
		}
		p.Start = d
	}
	if p.End.Before(p.Start) {
		return Period{}, NewValidationError("fim", fmt.Sprintf("must not be before %s", p.Start.Format(DateLayout)))
	}
	return p, nil
}
