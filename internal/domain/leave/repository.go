package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// LeaveRequestRepository is the append/query store for leave requests.
// Implementations must return ErrLeaveRequestNotFound from GetByID, Update
// and Delete when the id is unknown.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
	Delete(ctx context.Context, id string) error

	// ByUser returns the user's requests ordered by appliedAt descending.
	ByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	// ByStatus returns requests in the given status, appliedAt descending.
	ByStatus(ctx context.Context, status Status) ([]LeaveRequest, error)
	ByUserAndStatus(ctx context.Context, userID string, status Status) ([]LeaveRequest, error)
	// Pending returns all pending requests, oldest application first.
	Pending(ctx context.Context) ([]LeaveRequest, error)
	CountPending(ctx context.Context) (int64, error)

	// FindOverlappingApproved returns the user's APPROVED requests whose
	// interval intersects [start, end]. Pending requests are not considered.
	FindOverlappingApproved(ctx context.Context, userID string, start, end int64) ([]LeaveRequest, error)

	// ForTimestamp returns requests whose interval contains the instant, or
	// that start exactly on it.
	ForTimestamp(ctx context.Context, millis int64) ([]LeaveRequest, error)

	// SumApprovedDays totals TotalDays of the user's APPROVED requests whose
	// StartDate falls in [from, to).
	SumApprovedDays(ctx context.Context, userID string, category Category, from, to int64) (decimal.Decimal, error)
}
