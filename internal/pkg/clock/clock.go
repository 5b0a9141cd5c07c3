// Package clock supplies the current instant and calendar-day boundaries for
// a single configured time zone. All timestamps are Unix milliseconds; the
// zone only matters when collapsing an instant onto a calendar day.
package clock

import (
	"time"
)

type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Clock for the given zone backed by the system clock.
func New(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

// NewFixed returns a Clock whose "now" is pinned to the given instant.
// Used by tests.
func NewFixed(loc *time.Location, at time.Time) *Clock {
	return &Clock{loc: loc, now: func() time.Time { return at }}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now()
}

// NowMillis returns the current instant as Unix milliseconds.
func (c *Clock) NowMillis() int64 {
	return c.now().UnixMilli()
}

// StartOfDay collapses an instant onto the start of its calendar day in the
// configured zone, returned as Unix milliseconds.
func (c *Clock) StartOfDay(millis int64) int64 {
	t := time.UnixMilli(millis).In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc).UnixMilli()
}

// StartOfToday returns the start of the current calendar day.
func (c *Clock) StartOfToday() int64 {
	return c.StartOfDay(c.NowMillis())
}

// DaysInclusive counts the calendar days covered by [start, end], both ends
// included. A request starting and ending on the same day counts as 1.
func (c *Clock) DaysInclusive(startMillis, endMillis int64) int64 {
	start := c.dateOf(startMillis)
	end := c.dateOf(endMillis)
	return int64(end.Sub(start).Hours()/24) + 1
}

// YearRange returns [start of Jan 1 year, start of Jan 1 year+1) as Unix
// milliseconds in the configured zone.
func (c *Clock) YearRange(year int) (int64, int64) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, c.loc)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, c.loc)
	return start.UnixMilli(), end.UnixMilli()
}

// dateOf truncates an instant to midnight UTC of its calendar day in the
// configured zone, so day arithmetic is immune to DST offsets.
func (c *Clock) dateOf(millis int64) time.Time {
	t := time.UnixMilli(millis).In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
