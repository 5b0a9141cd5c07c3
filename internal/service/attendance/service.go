// Package attendance implements clock-in/clock-out time accounting.
package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/attendance"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/clock"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/lock"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/metrics"
)

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	clk            *clock.Clock
	locks          *lock.KeyedMutex
	opTimeout      time.Duration
}

func NewService(attendanceRepo attendance.AttendanceRepository, userRepo user.UserRepository, clk *clock.Clock, opTimeout time.Duration) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		clk:            clk,
		locks:          lock.NewKeyedMutex(),
		opTimeout:      opTimeout,
	}
}

func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// ClockIn opens a new session for the user dated to the start of today.
// Clocking in again before clocking out opens a second session; open
// sessions are not deduplicated.
func (s *Service) ClockIn(ctx context.Context, userID string) (attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.requireUser(ctx, userID); err != nil {
		return attendance.Session{}, err
	}

	now := s.clk.NowMillis()
	session := attendance.Session{
		UserID:         userID,
		AttendanceDate: s.clk.StartOfToday(),
		ClockInTime:    now,
		Status:         attendance.StatusPresent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.attendanceRepo.Create(ctx, session)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	metrics.ClockIns.Inc()
	return created, nil
}

// ClockOut closes the user's most recently opened session and computes its
// hours. With no open session it fails with ErrNoActiveSession.
func (s *Service) ClockOut(ctx context.Context, userID string) (attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	// Lock per user so concurrent clock-outs cannot close the same
	// session twice.
	unlock := s.locks.Lock("attendance-user:" + userID)
	defer unlock()

	open, err := s.attendanceRepo.OpenSessions(ctx, userID)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to query open sessions: %w", err)
	}
	if len(open) == 0 {
		return attendance.Session{}, attendance.ErrNoActiveSession
	}

	// Most recent clock-in wins when several sessions are open.
	session := open[0]
	session.ClockOutTime = s.clk.NowMillis()
	session.RecalculateHours()
	session.UpdatedAt = session.ClockOutTime

	if err := s.attendanceRepo.Update(ctx, session); err != nil {
		return attendance.Session{}, fmt.Errorf("failed to update attendance session: %w", err)
	}

	metrics.ClockOuts.Inc()
	return session, nil
}

// UpdateBreakDuration sets the unpaid break minutes on a session. Hours are
// recomputed immediately for closed sessions and at clock-out for open ones.
func (s *Service) UpdateBreakDuration(ctx context.Context, sessionID string, minutes int) (attendance.Session, error) {
	if minutes < 0 {
		return attendance.Session{}, attendance.ErrNegativeBreak
	}

	return s.mutate(ctx, sessionID, func(session *attendance.Session) {
		session.BreakDurationMinutes = minutes
		if session.IsClosed() {
			session.RecalculateHours()
		}
	})
}

func (s *Service) UpdateNotes(ctx context.Context, sessionID, notes string) (attendance.Session, error) {
	return s.mutate(ctx, sessionID, func(session *attendance.Session) {
		session.Notes = notes
	})
}

func (s *Service) MarkLate(ctx context.Context, sessionID string) (attendance.Session, error) {
	return s.mutate(ctx, sessionID, func(session *attendance.Session) {
		session.Status = attendance.StatusLate
	})
}

func (s *Service) MarkHalfDay(ctx context.Context, sessionID string) (attendance.Session, error) {
	return s.mutate(ctx, sessionID, func(session *attendance.Session) {
		session.Status = attendance.StatusHalfDay
	})
}

func (s *Service) mutate(ctx context.Context, sessionID string, apply func(*attendance.Session)) (attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	// First read only resolves the owner so the lock key matches ClockOut;
	// mutations on a session must serialize with closing it.
	session, err := s.attendanceRepo.GetByID(ctx, sessionID)
	if err != nil {
		return attendance.Session{}, err
	}

	unlock := s.locks.Lock("attendance-user:" + session.UserID)
	defer unlock()

	// Re-read under the lock; a concurrent clock-out may have closed the
	// session between the two reads.
	session, err = s.attendanceRepo.GetByID(ctx, sessionID)
	if err != nil {
		return attendance.Session{}, err
	}

	apply(&session)
	session.UpdatedAt = s.clk.NowMillis()

	if err := s.attendanceRepo.Update(ctx, session); err != nil {
		return attendance.Session{}, fmt.Errorf("failed to update attendance session: %w", err)
	}

	return session, nil
}

func (s *Service) GetByID(ctx context.Context, sessionID string) (attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.attendanceRepo.GetByID(ctx, sessionID)
}

// TodaySession returns the user's most recent session for today, or
// ErrSessionNotFound when the user has not clocked in yet.
func (s *Service) TodaySession(ctx context.Context, userID string) (attendance.Session, error) {
	sessions, err := s.TodaySessions(ctx, userID)
	if err != nil {
		return attendance.Session{}, err
	}
	if len(sessions) == 0 {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}

	return sessions[0], nil
}

// TodaySessions returns all of the user's sessions for today, most recent
// clock-in first.
func (s *Service) TodaySessions(ctx context.Context, userID string) ([]attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.attendanceRepo.ByUserAndDate(ctx, userID, s.clk.StartOfToday())
}

// ActiveSession returns the user's most recently opened session that has no
// clock-out yet.
func (s *Service) ActiveSession(ctx context.Context, userID string) (attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	open, err := s.attendanceRepo.OpenSessions(ctx, userID)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to query open sessions: %w", err)
	}
	if len(open) == 0 {
		return attendance.Session{}, attendance.ErrNoActiveSession
	}

	return open[0], nil
}

// IsClockedIn reports whether the user has at least one open session.
func (s *Service) IsClockedIn(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	open, err := s.attendanceRepo.OpenSessions(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to query open sessions: %w", err)
	}

	return len(open) > 0, nil
}

// History returns the user's full session history, most recent date first.
func (s *Service) History(ctx context.Context, userID string) ([]attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.attendanceRepo.ByUser(ctx, userID)
}

// Range returns the user's sessions whose attendance date falls in
// [start, end].
func (s *Service) Range(ctx context.Context, userID string, start, end int64) ([]attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if start > end {
		return nil, attendance.ErrInvalidDateRange
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.attendanceRepo.ByUserAndRange(ctx, userID, start, end)
}

// TodayAll returns every user's sessions for today.
func (s *Service) TodayAll(ctx context.Context) ([]attendance.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.attendanceRepo.TodaySessions(ctx, s.clk.StartOfToday())
}

// ClockedInCount counts sessions opened today across all users.
func (s *Service) ClockedInCount(ctx context.Context) (int64, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.attendanceRepo.CountClockedIn(ctx, s.clk.StartOfToday())
}

// OvertimeSum totals the user's overtime hours over [start, end].
func (s *Service) OvertimeSum(ctx context.Context, userID string, start, end int64) (attendance.OvertimeSummary, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if start > end {
		return attendance.OvertimeSummary{}, attendance.ErrInvalidDateRange
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return attendance.OvertimeSummary{}, err
	}

	total, err := s.attendanceRepo.SumOvertime(ctx, userID, start, end)
	if err != nil {
		return attendance.OvertimeSummary{}, fmt.Errorf("failed to sum overtime hours: %w", err)
	}

	return attendance.OvertimeSummary{UserID: userID, StartDate: start, EndDate: end, OvertimeHours: total}, nil
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
