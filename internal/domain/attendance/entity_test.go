package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func minutesSession(worked time.Duration, breakMinutes int) Session {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC).UnixMilli()
	return Session{
		ClockInTime:          in,
		ClockOutTime:         in + worked.Milliseconds(),
		BreakDurationMinutes: breakMinutes,
	}
}

func TestRecalculateHours(t *testing.T) {
	// 9h30m on the clock minus a 30 minute break is a 9 hour day with one
	// hour of overtime.
	s := minutesSession(9*time.Hour+30*time.Minute, 30)
	s.RecalculateHours()
	assert.True(t, s.TotalHours.Equal(decimal.NewFromInt(9)), s.TotalHours.String())
	assert.True(t, s.OvertimeHours.Equal(decimal.NewFromInt(1)), s.OvertimeHours.String())

	// Exactly the standard day has no overtime.
	s = minutesSession(8*time.Hour, 0)
	s.RecalculateHours()
	assert.True(t, s.TotalHours.Equal(decimal.NewFromInt(8)))
	assert.True(t, s.OvertimeHours.IsZero())

	// Short day, still no negative overtime.
	s = minutesSession(4*time.Hour, 0)
	s.RecalculateHours()
	assert.True(t, s.TotalHours.Equal(decimal.NewFromInt(4)))
	assert.True(t, s.OvertimeHours.IsZero())
}

func TestRecalculateHoursRounding(t *testing.T) {
	// 100 worked minutes is 1.666... hours, rounded half-up to 1.67.
	s := minutesSession(100*time.Minute, 0)
	s.RecalculateHours()
	assert.Equal(t, "1.67", s.TotalHours.StringFixed(2))

	// Sub-minute remainders are discarded before dividing.
	s = minutesSession(59*time.Second, 0)
	s.RecalculateHours()
	assert.True(t, s.TotalHours.IsZero())
}

func TestRecalculateHoursBreakExceedsWork(t *testing.T) {
	// A break longer than the session clamps to zero instead of going
	// negative.
	s := minutesSession(30*time.Minute, 60)
	s.RecalculateHours()
	assert.True(t, s.TotalHours.IsZero())
	assert.True(t, s.OvertimeHours.IsZero())
}

func TestRecalculateHoursOpenSessionNoOp(t *testing.T) {
	s := Session{ClockInTime: time.Now().UnixMilli()}
	s.RecalculateHours()
	assert.True(t, s.TotalHours.IsZero())
	assert.True(t, s.IsOpen())
	assert.False(t, s.IsClosed())
}
