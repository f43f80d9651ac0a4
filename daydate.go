package fluxeval

import "time"

// dayDate returns the input time as a date. It reproduces mmio.DayDate,
// which was removed from github.com/maseology/mmio upstream.
func dayDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
