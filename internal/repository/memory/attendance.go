package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu       sync.RWMutex
	sessions map[string]attendance.Session
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{sessions: make(map[string]attendance.Session)}
}

func (r *AttendanceRepository) Create(_ context.Context, session attendance.Session) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	r.sessions[session.ID] = session

	return session, nil
}

func (r *AttendanceRepository) GetByID(_ context.Context, id string) (attendance.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}

	return s, nil
}

func (r *AttendanceRepository) Update(_ context.Context, session attendance.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return attendance.ErrSessionNotFound
	}
	r.sessions[session.ID] = session

	return nil
}

func (r *AttendanceRepository) filter(keep func(attendance.Session) bool) []attendance.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Session
	for _, s := range r.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}

	return out
}

func byClockInDesc(sessions []attendance.Session) []attendance.Session {
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ClockInTime > sessions[j].ClockInTime })
	return sessions
}

func byDateDesc(sessions []attendance.Session) []attendance.Session {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].AttendanceDate != sessions[j].AttendanceDate {
			return sessions[i].AttendanceDate > sessions[j].AttendanceDate
		}
		return sessions[i].ClockInTime > sessions[j].ClockInTime
	})
	return sessions
}

func (r *AttendanceRepository) ByUserAndDate(_ context.Context, userID string, date int64) ([]attendance.Session, error) {
	return byClockInDesc(r.filter(func(s attendance.Session) bool {
		return s.UserID == userID && s.AttendanceDate == date
	})), nil
}

func (r *AttendanceRepository) OpenSessions(_ context.Context, userID string) ([]attendance.Session, error) {
	return byClockInDesc(r.filter(func(s attendance.Session) bool {
		return s.UserID == userID && s.ClockOutTime == 0
	})), nil
}

func (r *AttendanceRepository) ByUserAndRange(_ context.Context, userID string, start, end int64) ([]attendance.Session, error) {
	return byDateDesc(r.filter(func(s attendance.Session) bool {
		return s.UserID == userID && s.AttendanceDate >= start && s.AttendanceDate <= end
	})), nil
}

func (r *AttendanceRepository) ByUser(_ context.Context, userID string) ([]attendance.Session, error) {
	return byDateDesc(r.filter(func(s attendance.Session) bool {
		return s.UserID == userID
	})), nil
}

func (r *AttendanceRepository) TodaySessions(_ context.Context, date int64) ([]attendance.Session, error) {
	return byClockInDesc(r.filter(func(s attendance.Session) bool {
		return s.AttendanceDate == date
	})), nil
}

func (r *AttendanceRepository) CountClockedIn(_ context.Context, date int64) (int64, error) {
	return int64(len(r.filter(func(s attendance.Session) bool {
		return s.AttendanceDate == date && s.ClockInTime != 0
	}))), nil
}

func (r *AttendanceRepository) SumOvertime(_ context.Context, userID string, start, end int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.filter(func(s attendance.Session) bool {
		return s.UserID == userID && s.AttendanceDate >= start && s.AttendanceDate <= end
	}) {
		total = total.Add(s.OvertimeHours)
	}

	return total, nil
}
