package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
	"github.com/lazyhr/lazyhr-backend-go/internal/handler/http/response"
	leaveService "github.com/lazyhr/lazyhr-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	UserRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
	ByStatus(w http.ResponseWriter, r *http.Request)
	ForTimestamp(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
	UserBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService      *leaveService.Service
	balanceCalculator *leaveService.BalanceCalculator
}

func NewLeaveHandler(svc *leaveService.Service, calc *leaveService.BalanceCalculator) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: svc, balanceCalculator: calc}
}

// Apply implements LeaveHandler. The user id always comes from the token,
// never from the request body.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	created, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request created", "leave_id", created.ID, "user_id", userID)
	response.Created(w, "Leave request created successfully", leave.ToResponse(created))
}

// Get implements LeaveHandler.
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := l.leaveService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponse(request))
}

// MyRequests implements LeaveHandler. An optional status query parameter
// narrows the result.
func (l *LeaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	l.listUserRequests(w, r, userID)
}

// UserRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) UserRequests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	l.listUserRequests(w, r, userID)
}

func (l *LeaveHandlerImpl) listUserRequests(w http.ResponseWriter, r *http.Request, userID string) {
	var (
		requests []leave.LeaveRequest
		err      error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		requests, err = l.leaveService.UserRequestsByStatus(r.Context(), userID, leave.Status(status))
	} else {
		requests, err = l.leaveService.UserRequests(r.Context(), userID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponseList(requests))
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.Approve, "Leave request approved successfully")
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.Reject, "Leave request rejected successfully")
}

func (l *LeaveHandlerImpl) decide(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id string, req leave.DecisionRequest) (leave.LeaveRequest, error),
	message string,
) {
	approverID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.DecisionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Decision decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ApproverID = approverID

	updated, err := apply(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request decided", "leave_id", id, "status", updated.Status)
	response.SuccessWithMessage(w, message, leave.ToResponse(updated))
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	if err := l.leaveService.Cancel(r.Context(), id, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request cancelled", "leave_id", id, "user_id", userID)
	response.SuccessWithMessage(w, "Leave request cancelled successfully", nil)
}

// Pending implements LeaveHandler.
func (l *LeaveHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.PendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponseList(requests))
}

// PendingCount implements LeaveHandler.
func (l *LeaveHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := l.leaveService.PendingCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"pending_count": count})
}

// ByStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) ByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")

	requests, err := l.leaveService.RequestsByStatus(r.Context(), leave.Status(status))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponseList(requests))
}

// ForTimestamp implements LeaveHandler.
func (l *LeaveHandlerImpl) ForTimestamp(w http.ResponseWriter, r *http.Request) {
	millis, err := strconv.ParseInt(r.URL.Query().Get("at"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Query parameter 'at' must be a unix millisecond timestamp", nil)
		return
	}

	requests, err := l.leaveService.RequestsForTimestamp(r.Context(), millis)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponseList(requests))
}

// MyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	l.balance(w, r, userID)
}

// UserBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) UserBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	l.balance(w, r, userID)
}

func (l *LeaveHandlerImpl) balance(w http.ResponseWriter, r *http.Request, userID string) {
	var (
		summary leave.BalanceSummary
		err     error
	)
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		year, parseErr := strconv.Atoi(yearParam)
		if parseErr != nil {
			response.BadRequest(w, "Query parameter 'year' must be a number", nil)
			return
		}
		summary, err = l.balanceCalculator.Balance(r.Context(), userID, year)
	} else {
		summary, err = l.balanceCalculator.CurrentBalance(r.Context(), userID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
