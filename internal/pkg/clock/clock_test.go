package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInclusive(t *testing.T) {
	c := New(time.UTC)

	day := func(y int, m time.Month, d, hour int) int64 {
		return time.Date(y, m, d, hour, 0, 0, 0, time.UTC).UnixMilli()
	}

	// Same day counts as one regardless of time of day.
	assert.Equal(t, int64(1), c.DaysInclusive(day(2026, 3, 2, 9), day(2026, 3, 2, 17)))

	// Both endpoints included.
	assert.Equal(t, int64(5), c.DaysInclusive(day(2026, 3, 2, 0), day(2026, 3, 6, 0)))

	// Time of day on either end does not change the day count.
	assert.Equal(t, int64(2), c.DaysInclusive(day(2026, 3, 2, 23), day(2026, 3, 3, 1)))

	// Across a month boundary.
	assert.Equal(t, int64(3), c.DaysInclusive(day(2026, 1, 31, 12), day(2026, 2, 2, 12)))
}

func TestDaysInclusiveAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	c := New(loc)

	// DST starts 2026-03-29 in Berlin; that day has 23 hours. The count
	// must still be calendar days, not elapsed hours divided by 24.
	start := time.Date(2026, 3, 28, 12, 0, 0, 0, loc).UnixMilli()
	end := time.Date(2026, 3, 30, 12, 0, 0, 0, loc).UnixMilli()
	assert.Equal(t, int64(3), c.DaysInclusive(start, end))
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	c := New(loc)

	at := time.Date(2026, 6, 15, 14, 30, 45, 0, loc)
	want := time.Date(2026, 6, 15, 0, 0, 0, 0, loc).UnixMilli()
	assert.Equal(t, want, c.StartOfDay(at.UnixMilli()))
}

func TestStartOfTodayUsesFixedNow(t *testing.T) {
	at := time.Date(2026, 6, 15, 23, 59, 0, 0, time.UTC)
	c := NewFixed(time.UTC, at)

	want := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, c.StartOfToday())
	assert.Equal(t, at.UnixMilli(), c.NowMillis())
}

func TestYearRange(t *testing.T) {
	c := New(time.UTC)

	from, to := c.YearRange(2026)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), from)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), to)

	// A request starting Dec 31 belongs to the closing year, one starting
	// Jan 1 to the next.
	dec31 := time.Date(2026, 12, 31, 10, 0, 0, 0, time.UTC).UnixMilli()
	jan1 := time.Date(2027, 1, 1, 10, 0, 0, 0, time.UTC).UnixMilli()
	assert.True(t, dec31 >= from && dec31 < to)
	assert.False(t, jan1 < to)
}
