package timeutil

import "time"

// DayRange returns the epoch seconds bounding the calendar day of t in t's
// location: 00:00:00 as start and 23:59:59 as end.
func DayRange(t time.Time) (start, end int64) {
	year, month, day := t.Date()
	loc := t.Location()
	start = time.Date(year, month, day, 0, 0, 0, 0, loc).Unix()
	end = time.Date(year, month, day, 23, 59, 59, 0, loc).Unix()
	return start, end
}
