package leave

import (
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryAnnual         Category = "ANNUAL"
	CategorySick           Category = "SICK"
	CategoryPrivate        Category = "PRIVATE"
	CategorySpecialHoliday Category = "SPECIAL_HOLIDAY"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAnnual, CategorySick, CategoryPrivate, CategorySpecialHoliday:
		return true
	}
	return false
}

// Period selects half-day granularity. AM and PM both count as half days.
type Period string

const (
	PeriodFullDay Period = "FULL_DAY"
	PeriodAM      Period = "AM"
	PeriodPM      Period = "PM"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodFullDay, PeriodAM, PeriodPM:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// LeaveRequest is the stored form of a leave application. Cancellation is a
// hard delete, not a status.
type LeaveRequest struct {
	ID       string
	UserID   string
	Category Category
	Period   Period

	StartDate int64 // Unix milliseconds
	EndDate   int64 // Unix milliseconds

	// TotalDays is always derived from the dates and period, never accepted
	// from a caller.
	TotalDays decimal.Decimal

	Reason string
	Status Status

	ApproverID string
	ApprovedAt int64 // Unix milliseconds, zero until a decision is made
	Comments   string

	AppliedAt int64 // Unix milliseconds
	CreatedAt int64 // Unix milliseconds
	UpdatedAt int64 // Unix milliseconds
}

func (lr *LeaveRequest) IsPending() bool {
	return lr.Status == StatusPending
}

func (lr *LeaveRequest) IsApproved() bool {
	return lr.Status == StatusApproved
}

// half is the multiplier for AM/PM periods.
var half = decimal.NewFromFloat(0.5)

// CalcTotalDays derives the day count for an inclusive calendar-day span.
// AM and PM periods halve the count, also for multi-day spans.
func CalcTotalDays(inclusiveDays int64, period Period) decimal.Decimal {
	days := decimal.NewFromInt(inclusiveDays)
	if period == PeriodFullDay {
		return days
	}
	return days.Mul(half)
}
