// Package leave implements the leave request lifecycle: application with
// overlap checking, approval decisions, cancellation, and yearly balances.
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/clock"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/lock"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/metrics"
)

// cancelNotice is how far in the future a request must start to still be
// cancellable. A request starting today can no longer be cancelled.
const cancelNotice = 24 * time.Hour

// Notifier pushes request lifecycle updates to connected clients.
type Notifier interface {
	LeaveDecided(userID string, request leave.LeaveRequest)
}

type Service struct {
	leaveRepo leave.LeaveRequestRepository
	userRepo  user.UserRepository
	clk       *clock.Clock
	locks     *lock.KeyedMutex
	opTimeout time.Duration
	notifier  Notifier
}

func NewService(leaveRepo leave.LeaveRequestRepository, userRepo user.UserRepository, clk *clock.Clock, opTimeout time.Duration) *Service {
	return &Service{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		clk:       clk,
		locks:     lock.NewKeyedMutex(),
		opTimeout: opTimeout,
	}
}

// WithNotifier enables decision notifications. A nil service notifier
// disables them.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// opContext bounds every operation with the configured deadline.
func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// rejectedApply counts a rule rejection on the outcome metric and passes the
// error through. Infrastructure failures are not rejections and stay
// uncounted.
func rejectedApply(err error) (leave.LeaveRequest, error) {
	metrics.LeaveApplications.WithLabelValues("rejected").Inc()
	return leave.LeaveRequest{}, err
}

// Apply validates and stores a new PENDING leave request. The day count is
// always derived here; callers cannot supply it.
func (s *Service) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return rejectedApply(err)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return rejectedApply(user.ErrUserNotFound)
	}

	if req.StartDate > req.EndDate {
		return rejectedApply(leave.ErrInvalidDateRange)
	}

	now := s.clk.NowMillis()
	// The original rule compares against the current instant, not the start
	// of today: a request starting earlier today is already "in the past".
	if req.StartDate < now {
		return rejectedApply(leave.ErrStartDateInPast)
	}

	// Only APPROVED leave blocks a new application; pending requests may
	// still overlap each other.
	overlapping, err := s.leaveRepo.FindOverlappingApproved(ctx, req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}
	if len(overlapping) > 0 {
		return rejectedApply(&leave.OverlapError{
			ConflictingStart: overlapping[0].StartDate,
			ConflictingEnd:   overlapping[0].EndDate,
		})
	}

	days := s.clk.DaysInclusive(req.StartDate, req.EndDate)

	request := leave.LeaveRequest{
		UserID:    req.UserID,
		Category:  req.Category,
		Period:    req.Period,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalDays: leave.CalcTotalDays(days, req.Period),
		Reason:    req.Reason,
		Status:    leave.StatusPending,
		AppliedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.leaveRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	metrics.LeaveApplications.WithLabelValues("accepted").Inc()
	return created, nil
}

// Approve moves a PENDING request to APPROVED. Approving twice fails with
// ErrLeaveNotPending rather than being silently accepted.
func (s *Service) Approve(ctx context.Context, leaveID string, req leave.DecisionRequest) (leave.LeaveRequest, error) {
	return s.decide(ctx, leaveID, req, leave.StatusApproved)
}

// Reject moves a PENDING request to REJECTED.
func (s *Service) Reject(ctx context.Context, leaveID string, req leave.DecisionRequest) (leave.LeaveRequest, error) {
	return s.decide(ctx, leaveID, req, leave.StatusRejected)
}

func (s *Service) decide(ctx context.Context, leaveID string, req leave.DecisionRequest, status leave.Status) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	// Serialize decisions per request so two concurrent approvals cannot
	// both observe PENDING.
	unlock := s.locks.Lock("leave:" + leaveID)
	defer unlock()

	request, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	exists, err := s.userRepo.Exists(ctx, req.ApproverID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check approver existence: %w", err)
	}
	if !exists {
		return leave.LeaveRequest{}, user.ErrUserNotFound
	}

	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveNotPending
	}

	now := s.clk.NowMillis()
	request.Status = status
	request.ApproverID = req.ApproverID
	request.ApprovedAt = now
	request.Comments = req.Comments
	request.UpdatedAt = now

	if err := s.leaveRepo.Update(ctx, request); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	if status == leave.StatusApproved {
		metrics.LeaveDecisions.WithLabelValues("approve").Inc()
	} else {
		metrics.LeaveDecisions.WithLabelValues("reject").Inc()
	}

	if s.notifier != nil {
		s.notifier.LeaveDecided(request.UserID, request)
	}
	return request, nil
}

// Cancel hard-deletes a PENDING request owned by userID. Requests starting
// within the next 24 hours can no longer be cancelled.
func (s *Service) Cancel(ctx context.Context, leaveID, userID string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	unlock := s.locks.Lock("leave:" + leaveID)
	defer unlock()

	request, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		return err
	}

	if request.UserID != userID {
		return leave.ErrNotRequestOwner
	}

	if !request.IsPending() {
		return leave.ErrLeaveNotPending
	}

	if request.StartDate < s.clk.NowMillis()+cancelNotice.Milliseconds() {
		return leave.ErrTooLateToCancel
	}

	if err := s.leaveRepo.Delete(ctx, leaveID); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	metrics.LeaveDecisions.WithLabelValues("cancel").Inc()
	return nil
}

func (s *Service) GetByID(ctx context.Context, leaveID string) (leave.LeaveRequest, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.leaveRepo.GetByID(ctx, leaveID)
}

// UserRequests returns the user's requests, newest application first.
func (s *Service) UserRequests(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.leaveRepo.ByUser(ctx, userID)
}

func (s *Service) UserRequestsByStatus(ctx context.Context, userID string, status leave.Status) ([]leave.LeaveRequest, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if !status.Valid() {
		return nil, leave.ErrInvalidStatus
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.leaveRepo.ByUserAndStatus(ctx, userID, status)
}

func (s *Service) RequestsByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if !status.Valid() {
		return nil, leave.ErrInvalidStatus
	}

	return s.leaveRepo.ByStatus(ctx, status)
}

// PendingRequests returns the approval queue, oldest application first.
func (s *Service) PendingRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.leaveRepo.Pending(ctx)
}

func (s *Service) PendingCount(ctx context.Context) (int64, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.leaveRepo.CountPending(ctx)
}

// HasPending reports whether the user has any request awaiting a decision.
func (s *Service) HasPending(ctx context.Context, userID string) (bool, error) {
	requests, err := s.UserRequestsByStatus(ctx, userID, leave.StatusPending)
	if err != nil {
		return false, err
	}

	return len(requests) > 0, nil
}

// RequestsForTimestamp returns requests whose interval contains the instant
// or that start exactly on it, regardless of status.
func (s *Service) RequestsForTimestamp(ctx context.Context, millis int64) ([]leave.LeaveRequest, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.leaveRepo.ForTimestamp(ctx, millis)
}

func (s *Service) requireUser(ctx context.Context, userID string) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return user.ErrUserNotFound
	}

	return nil
}
