package payroll

import (
	"time"
)

// =============================================================================
// WEEK - Sunday-to-Saturday UTC buckets used for weekly totals
// =============================================================================

// UnknownWeekKey is the bucket for shifts whose date cannot be parsed.
const UnknownWeekKey = "unknown"

const isoDate = "2006-01-02"

// Week is a Sunday..Saturday range. The zero Week is the unknown bucket.
type Week struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a "YYYY-MM-DD" shift date as a UTC day.
func ParseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(isoDate, v, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// WeekOf returns the week containing the given date. Missing or unparsable
// dates land in the unknown week.
func WeekOf(date string) Week {
	day, err := ParseDate(date)
	if err != nil {
		return Week{}
	}
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// Known reports whether the week has boundary dates.
func (w Week) Known() bool { return !w.Start.IsZero() }

// Key identifies the bucket: "start_end" or "unknown".
func (w Week) Key() string {
	if !w.Known() {
		return UnknownWeekKey
	}
	return w.StartISO() + "_" + w.EndISO()
}

// StartISO returns the Sunday as "YYYY-MM-DD", or "" for the unknown week.
func (w Week) StartISO() string {
	if !w.Known() {
		return ""
	}
	return w.Start.Format(isoDate)
}

// EndISO returns the Saturday as "YYYY-MM-DD", or "" for the unknown week.
func (w Week) EndISO() string {
	if !w.Known() {
		return ""
	}
	return w.End.Format(isoDate)
}

// Label renders "start ~ end", or fallback for the unknown week.
func (w Week) Label(fallback string) string {
	if !w.Known() {
		return fallback
	}
	return w.StartISO() + " ~ " + w.EndISO()
}

// TodayISO returns the UTC calendar date of now.
func TodayISO(now time.Time) string {
	return now.UTC().Format(isoDate)
}
