package attendance

import "errors"

var (
	ErrSessionNotFound    = errors.New("attendance record not found")
	ErrNoActiveSession    = errors.New("no active clock-in found")
	ErrNegativeBreak      = errors.New("break duration cannot be negative")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrInvalidDateRange   = errors.New("start date cannot be after end date")
	ErrSessionAlreadyOpen = errors.New("an open attendance session already exists")
)
