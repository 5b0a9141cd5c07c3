package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/attendance"
	"github.com/lazyhr/lazyhr-backend-go/internal/handler/http/response"
	attendanceService "github.com/lazyhr/lazyhr-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	TodaySessions(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
	UpdateBreak(w http.ResponseWriter, r *http.Request)
	UpdateNotes(w http.ResponseWriter, r *http.Request)
	MarkLate(w http.ResponseWriter, r *http.Request)
	MarkHalfDay(w http.ResponseWriter, r *http.Request)
	TodayAll(w http.ResponseWriter, r *http.Request)
	ClockedInCount(w http.ResponseWriter, r *http.Request)
	Overtime(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendanceService.Service
}

func NewAttendanceHandler(svc *attendanceService.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: svc}
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	session, err := h.attendanceService.ClockIn(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User clocked in", "user_id", userID, "session_id", session.ID)
	response.Created(w, "Clocked in successfully", attendance.ToResponse(session))
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	session, err := h.attendanceService.ClockOut(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User clocked out", "user_id", userID, "session_id", session.ID)
	response.SuccessWithMessage(w, "Clocked out successfully", attendance.ToResponse(session))
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	session, err := h.attendanceService.TodaySession(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponse(session))
}

// TodaySessions implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TodaySessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	sessions, err := h.attendanceService.TodaySessions(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponseList(sessions))
}

// Active implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Active(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	session, err := h.attendanceService.ActiveSession(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponse(session))
}

// Status implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	clockedIn, err := h.attendanceService.IsClockedIn(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"clocked_in": clockedIn})
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	sessions, err := h.attendanceService.History(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponseList(sessions))
}

// Range implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	sessions, err := h.attendanceService.Range(r.Context(), userID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponseList(sessions))
}

// UpdateBreak implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateBreak(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		response.BadRequest(w, "Session ID is required", nil)
		return
	}

	var req attendance.UpdateBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	session, err := h.attendanceService.UpdateBreakDuration(r.Context(), sessionID, req.Minutes)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break duration updated successfully", attendance.ToResponse(session))
}

// UpdateNotes implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		response.BadRequest(w, "Session ID is required", nil)
		return
	}

	var req attendance.UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateNotes decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	session, err := h.attendanceService.UpdateNotes(r.Context(), sessionID, req.Notes)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notes updated successfully", attendance.ToResponse(session))
}

// MarkLate implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MarkLate(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.attendanceService.MarkLate, "Session marked late")
}

// MarkHalfDay implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MarkHalfDay(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.attendanceService.MarkHalfDay, "Session marked half day")
}

func (h *AttendanceHandlerImpl) mark(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, sessionID string) (attendance.Session, error),
	message string,
) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		response.BadRequest(w, "Session ID is required", nil)
		return
	}

	session, err := apply(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, attendance.ToResponse(session))
}

// TodayAll implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TodayAll(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.attendanceService.TodayAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponseList(sessions))
}

// ClockedInCount implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockedInCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.attendanceService.ClockedInCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"clocked_in_count": count})
}

// Overtime implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Overtime(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	summary, err := h.attendanceService.OvertimeSum(r.Context(), userID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// parseRange reads start/end unix millisecond query parameters. On failure
// it writes the error response and returns ok=false.
func parseRange(w http.ResponseWriter, r *http.Request) (start, end int64, ok bool) {
	start, err := strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Query parameter 'start' must be a unix millisecond timestamp", nil)
		return 0, 0, false
	}

	end, err = strconv.ParseInt(r.URL.Query().Get("end"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Query parameter 'end' must be a unix millisecond timestamp", nil)
		return 0, 0, false
	}

	return start, end, true
}
