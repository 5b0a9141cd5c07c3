package attendance

import (
	"context"

	"github.com/shopspring/decimal"
)

// AttendanceRepository stores clock-in/clock-out sessions. Sessions are never
// deleted. Implementations must return ErrSessionNotFound from GetByID and
// Update when the id is unknown.
type AttendanceRepository interface {
	Create(ctx context.Context, session Session) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, session Session) error

	// ByUserAndDate returns the user's sessions for the given day start,
	// most recent clock-in first.
	ByUserAndDate(ctx context.Context, userID string, date int64) ([]Session, error)
	// OpenSessions returns the user's sessions with no clock-out, most
	// recent clock-in first.
	OpenSessions(ctx context.Context, userID string) ([]Session, error)
	// ByUserAndRange returns sessions with AttendanceDate in [start, end],
	// newest day first.
	ByUserAndRange(ctx context.Context, userID string, start, end int64) ([]Session, error)
	// ByUser returns the user's full history, newest day first.
	ByUser(ctx context.Context, userID string) ([]Session, error)
	// TodaySessions returns every session for the given day start, most
	// recent clock-in first.
	TodaySessions(ctx context.Context, date int64) ([]Session, error)
	// CountClockedIn counts sessions recorded for the given day start.
	CountClockedIn(ctx context.Context, date int64) (int64, error)
	// SumOvertime totals OvertimeHours for AttendanceDate in [start, end].
	SumOvertime(ctx context.Context, userID string, start, end int64) (decimal.Decimal, error)
}
