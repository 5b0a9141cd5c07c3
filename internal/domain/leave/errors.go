package leave

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("start date cannot be after end date")
	ErrStartDateInPast      = errors.New("cannot apply for leave in the past")
	ErrLeaveNotPending      = errors.New("leave request is not in pending status")
	ErrTooLateToCancel      = errors.New("cannot cancel leave request that starts within 24 hours")
	ErrNotRequestOwner      = errors.New("leave request does not belong to the user")
	ErrOverlappingLeave     = errors.New("leave request overlaps with existing approved leave")
	ErrInvalidCategory      = errors.New("invalid leave category")
	ErrInvalidPeriod        = errors.New("invalid leave period")
	ErrInvalidStatus        = errors.New("invalid leave status")
)

// OverlapError carries the conflicting approved interval so callers can show
// it instead of parsing a message. Matches ErrOverlappingLeave via errors.Is.
type OverlapError struct {
	ConflictingStart int64 // Unix milliseconds
	ConflictingEnd   int64 // Unix milliseconds
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("leave request overlaps with existing approved leave from %s to %s",
		time.UnixMilli(e.ConflictingStart).UTC().Format(time.RFC3339),
		time.UnixMilli(e.ConflictingEnd).UTC().Format(time.RFC3339))
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlappingLeave
}
