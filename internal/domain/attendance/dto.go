package attendance

import (
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateBreakRequest struct {
	Minutes int `json:"break_duration_minutes"`
}

func (r *UpdateBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Minutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration_minutes",
			Message: "break_duration_minutes must not be negative",
		})
	}
	if r.Minutes > 24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration_minutes",
			Message: "break_duration_minutes must not exceed a full day",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

func (r *UpdateNotesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OvertimeSummary struct {
	UserID        string          `json:"user_id"`
	StartDate     int64           `json:"start_date"`
	EndDate       int64           `json:"end_date"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type SessionResponse struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"user_id"`
	AttendanceDate       int64           `json:"attendance_date"`
	ClockInTime          int64           `json:"clock_in_time"`
	ClockOutTime         int64           `json:"clock_out_time,omitempty"`
	BreakDurationMinutes int             `json:"break_duration_minutes"`
	TotalHours           decimal.Decimal `json:"total_hours"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	Status               Status          `json:"status"`
	Notes                string          `json:"notes,omitempty"`
	Open                 bool            `json:"open"`
	CreatedAt            int64           `json:"created_at"`
	UpdatedAt            int64           `json:"updated_at"`
}

func ToResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:                   s.ID,
		UserID:               s.UserID,
		AttendanceDate:       s.AttendanceDate,
		ClockInTime:          s.ClockInTime,
		ClockOutTime:         s.ClockOutTime,
		BreakDurationMinutes: s.BreakDurationMinutes,
		TotalHours:           s.TotalHours,
		OvertimeHours:        s.OvertimeHours,
		Status:               s.Status,
		Notes:                s.Notes,
		Open:                 s.IsOpen(),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func ToResponseList(sessions []Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, ToResponse(s))
	}
	return out
}
