package timeutil

import (
	"sync"
	"time"
)

var (
	mu  sync.RWMutex
	loc = time.UTC
)

// SetLocation sets the business timezone used to decide what "today" is.
func SetLocation(l *time.Location) {
	if l == nil {
		return
	}
	mu.Lock()
	loc = l
	mu.Unlock()
}

// Location returns the business timezone.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return loc
}

// Now returns the current time in the business timezone.
func Now() time.Time {
	return time.Now().In(Location())
}

// Today returns the current calendar date as midnight UTC.
func Today() time.Time {
	return Date(Now())
}

// Date truncates t to its calendar date in the business timezone, expressed as midnight UTC.
// Calendar dates are compared in UTC so that DATE columns and arithmetic never drift.
func Date(t time.Time) time.Time {
	local := t.In(Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// DaysBetween returns the whole days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// NextDailyRun returns the next instant at hour:minute in the business timezone strictly after now.
func NextDailyRun(now time.Time, hour, minute int) time.Time {
	l := Location()
	local := now.In(l)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, l)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
)
