package leave

import (
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ApplyLeaveRequest struct {
	UserID    string   `json:"user_id"`
	Category  Category `json:"category"`
	Period    Period   `json:"period"`
	StartDate int64    `json:"start_date"` // Unix milliseconds
	EndDate   int64    `json:"end_date"`   // Unix milliseconds
	Reason    string   `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !r.Category.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of ANNUAL, SICK, PRIVATE, SPECIAL_HOLIDAY",
		})
	}

	if !r.Period.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be one of FULL_DAY, AM, PM",
		})
	}

	if r.StartDate <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a Unix millisecond timestamp",
		})
	}

	if r.EndDate <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a Unix millisecond timestamp",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecisionRequest covers both approve and reject.
type DecisionRequest struct {
	ApproverID string `json:"approver_id"`
	Comments   string `json:"comments,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Category   Category        `json:"category"`
	Period     Period          `json:"period"`
	StartDate  int64           `json:"start_date"`
	EndDate    int64           `json:"end_date"`
	TotalDays  decimal.Decimal `json:"total_days"`
	Reason     string          `json:"reason"`
	Status     Status          `json:"status"`
	ApproverID string          `json:"approver_id,omitempty"`
	ApprovedAt int64           `json:"approved_at,omitempty"`
	Comments   string          `json:"comments,omitempty"`
	AppliedAt  int64           `json:"applied_at"`
	CreatedAt  int64           `json:"created_at"`
	UpdatedAt  int64           `json:"updated_at"`
}

func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         lr.ID,
		UserID:     lr.UserID,
		Category:   lr.Category,
		Period:     lr.Period,
		StartDate:  lr.StartDate,
		EndDate:    lr.EndDate,
		TotalDays:  lr.TotalDays,
		Reason:     lr.Reason,
		Status:     lr.Status,
		ApproverID: lr.ApproverID,
		ApprovedAt: lr.ApprovedAt,
		Comments:   lr.Comments,
		AppliedAt:  lr.AppliedAt,
		CreatedAt:  lr.CreatedAt,
		UpdatedAt:  lr.UpdatedAt,
	}
}

func ToResponseList(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		out = append(out, ToResponse(lr))
	}
	return out
}

// CategoryBalance is one row of the yearly balance summary. Remaining may be
// negative when approvals exceed the allocation.
type CategoryBalance struct {
	Allocated *decimal.Decimal `json:"allocated,omitempty"`
	Used      decimal.Decimal  `json:"used"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
}

type BalanceSummary struct {
	UserID         string          `json:"user_id"`
	Year           int             `json:"year"`
	Annual         CategoryBalance `json:"annual"`
	Sick           CategoryBalance `json:"sick"`
	Private        CategoryBalance `json:"private"`
	SpecialHoliday CategoryBalance `json:"special_holiday"`
}
