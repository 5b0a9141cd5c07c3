package attendance

import (
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// Session is one clock-in/clock-out pair. A session with no ClockOutTime is
// open; TotalHours and OvertimeHours stay zero until it is closed.
type Session struct {
	ID     string
	UserID string

	AttendanceDate int64 // start of the calendar day, Unix milliseconds
	ClockInTime    int64 // Unix milliseconds
	ClockOutTime   int64 // Unix milliseconds, zero while open

	BreakDurationMinutes int

	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal

	Status Status
	Notes  string

	CreatedAt int64 // Unix milliseconds
	UpdatedAt int64 // Unix milliseconds
}

func (s *Session) IsOpen() bool {
	return s.ClockInTime != 0 && s.ClockOutTime == 0
}

func (s *Session) IsClosed() bool {
	return s.ClockInTime != 0 && s.ClockOutTime != 0
}

var (
	sixty         = decimal.NewFromInt(60)
	standardHours = decimal.NewFromInt(8)
)

// RecalculateHours derives TotalHours and OvertimeHours from the recorded
// clock times and break. Whole minutes worked minus break, floored at zero,
// divided by 60 and rounded half-up to two decimals; overtime is whatever
// exceeds the 8-hour standard day. No-op while the session is open.
func (s *Session) RecalculateHours() {
	if !s.IsClosed() {
		return
	}

	workedMinutes := (s.ClockOutTime-s.ClockInTime)/60000 - int64(s.BreakDurationMinutes)
	if workedMinutes < 0 {
		workedMinutes = 0
	}

	s.TotalHours = decimal.NewFromInt(workedMinutes).DivRound(sixty, 2)
	if s.TotalHours.GreaterThan(standardHours) {
		s.OvertimeHours = s.TotalHours.Sub(standardHours)
	} else {
		s.OvertimeHours = decimal.Zero
	}
}
