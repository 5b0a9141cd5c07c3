package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
)

type LeaveRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]leave.LeaveRequest
}

func NewLeaveRequestRepository() *LeaveRequestRepository {
	return &LeaveRequestRepository{requests: make(map[string]leave.LeaveRequest)}
}

func (r *LeaveRequestRepository) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	r.requests[request.ID] = request

	return request, nil
}

func (r *LeaveRequestRepository) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lr, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}

	return lr, nil
}

func (r *LeaveRequestRepository) Update(_ context.Context, request leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[request.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	r.requests[request.ID] = request

	return nil
}

func (r *LeaveRequestRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.requests, id)

	return nil
}

// filter snapshots matching requests under the read lock.
func (r *LeaveRequestRepository) filter(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []leave.LeaveRequest
	for _, lr := range r.requests {
		if keep(lr) {
			out = append(out, lr)
		}
	}

	return out
}

func byAppliedAtDesc(requests []leave.LeaveRequest) []leave.LeaveRequest {
	sort.Slice(requests, func(i, j int) bool { return requests[i].AppliedAt > requests[j].AppliedAt })
	return requests
}

func (r *LeaveRequestRepository) ByUser(_ context.Context, userID string) ([]leave.LeaveRequest, error) {
	return byAppliedAtDesc(r.filter(func(lr leave.LeaveRequest) bool {
		return lr.UserID == userID
	})), nil
}

func (r *LeaveRequestRepository) ByStatus(_ context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	return byAppliedAtDesc(r.filter(func(lr leave.LeaveRequest) bool {
		return lr.Status == status
	})), nil
}

func (r *LeaveRequestRepository) ByUserAndStatus(_ context.Context, userID string, status leave.Status) ([]leave.LeaveRequest, error) {
	return byAppliedAtDesc(r.filter(func(lr leave.LeaveRequest) bool {
		return lr.UserID == userID && lr.Status == status
	})), nil
}

func (r *LeaveRequestRepository) Pending(_ context.Context) ([]leave.LeaveRequest, error) {
	pending := r.filter(func(lr leave.LeaveRequest) bool {
		return lr.Status == leave.StatusPending
	})
	sort.Slice(pending, func(i, j int) bool { return pending[i].AppliedAt < pending[j].AppliedAt })

	return pending, nil
}

func (r *LeaveRequestRepository) CountPending(_ context.Context) (int64, error) {
	return int64(len(r.filter(func(lr leave.LeaveRequest) bool {
		return lr.Status == leave.StatusPending
	}))), nil
}

func (r *LeaveRequestRepository) FindOverlappingApproved(_ context.Context, userID string, start, end int64) ([]leave.LeaveRequest, error) {
	overlapping := r.filter(func(lr leave.LeaveRequest) bool {
		return lr.UserID == userID &&
			lr.Status == leave.StatusApproved &&
			lr.StartDate <= end &&
			lr.EndDate >= start
	})
	sort.Slice(overlapping, func(i, j int) bool { return overlapping[i].StartDate < overlapping[j].StartDate })

	return overlapping, nil
}

func (r *LeaveRequestRepository) ForTimestamp(_ context.Context, millis int64) ([]leave.LeaveRequest, error) {
	return byAppliedAtDesc(r.filter(func(lr leave.LeaveRequest) bool {
		return lr.StartDate == millis || (lr.StartDate <= millis && lr.EndDate >= millis)
	})), nil
}

func (r *LeaveRequestRepository) SumApprovedDays(_ context.Context, userID string, category leave.Category, from, to int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, lr := range r.filter(func(lr leave.LeaveRequest) bool {
		return lr.UserID == userID &&
			lr.Category == category &&
			lr.Status == leave.StatusApproved &&
			lr.StartDate >= from &&
			lr.StartDate < to
	}) {
		total = total.Add(lr.TotalDays)
	}

	return total, nil
}
