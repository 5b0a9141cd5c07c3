package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/attendance"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/auth"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Overlap conflicts carry the blocking interval so clients can show it.
	var overlapErr *leave.OverlapError
	if errors.As(err, &overlapErr) {
		Conflict(w, "Leave request overlaps an approved leave", map[string]string{
			"conflicting_start": strconv.FormatInt(overlapErr.ConflictingStart, 10),
			"conflicting_end":   strconv.FormatInt(overlapErr.ConflictingEnd, 10),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken", nil)
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered", nil)
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, leave.ErrStartDateInPast):
		BadRequest(w, "Start date must not be in the past", nil)
	case errors.Is(err, leave.ErrLeaveNotPending):
		Conflict(w, "Leave request is not pending", nil)
	case errors.Is(err, leave.ErrTooLateToCancel):
		Conflict(w, "Leave request starts too soon to cancel", nil)
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Only the request owner can cancel it")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an approved leave", nil)
	case errors.Is(err, leave.ErrInvalidCategory),
		errors.Is(err, leave.ErrInvalidPeriod),
		errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrNoActiveSession):
		Conflict(w, "No active attendance session", nil)
	case errors.Is(err, attendance.ErrNegativeBreak):
		BadRequest(w, "Break duration must not be negative", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
