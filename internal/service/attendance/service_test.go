package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/attendance"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/clock"
	"github.com/lazyhr/lazyhr-backend-go/internal/repository/memory"
)

// Monday 2026-03-02 18:30 UTC, late enough in the day that seeded morning
// clock-ins stay on the same calendar day.
var testNow = time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memory.AttendanceRepository, *memory.UserRepository) {
	t.Helper()
	attendanceRepo := memory.NewAttendanceRepository()
	userRepo := memory.NewUserRepository()
	clk := clock.NewFixed(time.UTC, testNow)
	return NewService(attendanceRepo, userRepo, clk, 5*time.Second), attendanceRepo, userRepo
}

func seedUser(t *testing.T, repo *memory.UserRepository, username string) user.User {
	t.Helper()
	u, err := repo.Create(context.Background(), user.User{
		Username: username,
		Email:    username + "@lazyhr.local",
		Role:     user.RoleEmployee,
		Active:   true,
	})
	require.NoError(t, err)
	return u
}

// seedOpenSession plants an open session whose clock-in happened the given
// duration before testNow.
func seedOpenSession(t *testing.T, repo *memory.AttendanceRepository, userID string, ago time.Duration) attendance.Session {
	t.Helper()
	in := testNow.Add(-ago)
	s, err := repo.Create(context.Background(), attendance.Session{
		UserID:         userID,
		AttendanceDate: time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, time.UTC).UnixMilli(),
		ClockInTime:    in.UnixMilli(),
		Status:         attendance.StatusPresent,
	})
	require.NoError(t, err)
	return s
}

func TestClockInOpensSessionForToday(t *testing.T) {
	svc, _, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	session, err := svc.ClockIn(context.Background(), u.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, u.ID, session.UserID)
	assert.Equal(t, testNow.UnixMilli(), session.ClockInTime)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), session.AttendanceDate)
	assert.Equal(t, attendance.StatusPresent, session.Status)
	assert.True(t, session.IsOpen())
}

func TestClockInUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ClockIn(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestClockInTwiceOpensSecondSession(t *testing.T) {
	svc, _, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	first, err := svc.ClockIn(context.Background(), u.ID)
	require.NoError(t, err)
	second, err := svc.ClockIn(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	clockedIn, err := svc.IsClockedIn(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, clockedIn)
}

func TestClockOutComputesHours(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	// Clocked in 9h30m ago with a 30 minute break pending.
	seeded := seedOpenSession(t, attendanceRepo, u.ID, 9*time.Hour+30*time.Minute)
	_, err := svc.UpdateBreakDuration(context.Background(), seeded.ID, 30)
	require.NoError(t, err)

	session, err := svc.ClockOut(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, session.ID)
	assert.Equal(t, testNow.UnixMilli(), session.ClockOutTime)
	assert.True(t, session.TotalHours.Equal(decimal.NewFromInt(9)), session.TotalHours.String())
	assert.True(t, session.OvertimeHours.Equal(decimal.NewFromInt(1)), session.OvertimeHours.String())
	assert.True(t, session.IsClosed())
}

func TestClockOutWithoutOpenSession(t *testing.T) {
	svc, _, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	_, err := svc.ClockOut(context.Background(), u.ID)
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestClockOutClosesMostRecentOpenSession(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	older := seedOpenSession(t, attendanceRepo, u.ID, 9*time.Hour)
	newer := seedOpenSession(t, attendanceRepo, u.ID, 2*time.Hour)

	session, err := svc.ClockOut(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, session.ID)

	// The older session is still open.
	active, err := svc.ActiveSession(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, active.ID)
}

func TestUpdateBreakRecomputesClosedSession(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	seedOpenSession(t, attendanceRepo, u.ID, 8*time.Hour)
	closed, err := svc.ClockOut(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, closed.TotalHours.Equal(decimal.NewFromInt(8)))

	updated, err := svc.UpdateBreakDuration(context.Background(), closed.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, updated.BreakDurationMinutes)
	assert.True(t, updated.TotalHours.Equal(decimal.NewFromInt(7)), updated.TotalHours.String())
	assert.True(t, updated.OvertimeHours.IsZero())
}

func TestUpdateBreakNegativeMinutes(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")
	seeded := seedOpenSession(t, attendanceRepo, u.ID, time.Hour)

	_, err := svc.UpdateBreakDuration(context.Background(), seeded.ID, -5)
	assert.ErrorIs(t, err, attendance.ErrNegativeBreak)
}

func TestUpdateBreakUnknownSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateBreakDuration(context.Background(), "no-such-session", 30)
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)
}

func TestUpdateNotesAndMarks(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")
	seeded := seedOpenSession(t, attendanceRepo, u.ID, time.Hour)

	session, err := svc.UpdateNotes(context.Background(), seeded.ID, "worked from the office")
	require.NoError(t, err)
	assert.Equal(t, "worked from the office", session.Notes)

	session, err = svc.MarkLate(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, session.Status)

	session, err = svc.MarkHalfDay(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, session.Status)
	assert.Equal(t, testNow.UnixMilli(), session.UpdatedAt)
}

func TestTodaySessionPicksMostRecent(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	seedOpenSession(t, attendanceRepo, u.ID, 10*time.Hour)
	newest := seedOpenSession(t, attendanceRepo, u.ID, time.Hour)

	session, err := svc.TodaySession(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, session.ID)

	sessions, err := svc.TodaySessions(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestTodaySessionNotFound(t *testing.T) {
	svc, _, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	_, err := svc.TodaySession(context.Background(), u.ID)
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)
}

func TestIsClockedIn(t *testing.T) {
	svc, _, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	clockedIn, err := svc.IsClockedIn(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, clockedIn)

	_, err = svc.ClockIn(context.Background(), u.ID)
	require.NoError(t, err)

	clockedIn, err = svc.IsClockedIn(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, clockedIn)

	_, err = svc.ClockOut(context.Background(), u.ID)
	require.NoError(t, err)

	clockedIn, err = svc.IsClockedIn(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, clockedIn)
}

func TestHistoryAndRange(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	// Three closed sessions on consecutive days in the prior week.
	for day := 23; day <= 25; day++ {
		in := time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC)
		s := attendance.Session{
			UserID:         u.ID,
			AttendanceDate: time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC).UnixMilli(),
			ClockInTime:    in.UnixMilli(),
			ClockOutTime:   in.Add(8 * time.Hour).UnixMilli(),
			Status:         attendance.StatusPresent,
		}
		s.RecalculateHours()
		_, err := attendanceRepo.Create(context.Background(), s)
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// Most recent date first.
	assert.Equal(t, time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC).UnixMilli(), history[0].AttendanceDate)

	// Range covering only the first two days.
	start := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC).UnixMilli()
	ranged, err := svc.Range(context.Background(), u.ID, start, end)
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestRangeInvalidBounds(t *testing.T) {
	svc, _, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	_, err := svc.Range(context.Background(), u.ID, 2000, 1000)
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)

	_, err = svc.OvertimeSum(context.Background(), u.ID, 2000, 1000)
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
}

func TestOvertimeSum(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	// Two 10 hour days and one 8 hour day: 4 hours of overtime.
	for day, worked := range map[int]time.Duration{
		23: 10 * time.Hour,
		24: 8 * time.Hour,
		25: 10 * time.Hour,
	} {
		in := time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC)
		s := attendance.Session{
			UserID:         u.ID,
			AttendanceDate: time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC).UnixMilli(),
			ClockInTime:    in.UnixMilli(),
			ClockOutTime:   in.Add(worked).UnixMilli(),
			Status:         attendance.StatusPresent,
		}
		s.RecalculateHours()
		_, err := attendanceRepo.Create(context.Background(), s)
		require.NoError(t, err)
	}

	start := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC).UnixMilli()
	summary, err := svc.OvertimeSum(context.Background(), u.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, u.ID, summary.UserID)
	assert.Equal(t, start, summary.StartDate)
	assert.Equal(t, end, summary.EndDate)
	assert.True(t, summary.OvertimeHours.Equal(decimal.NewFromInt(4)), summary.OvertimeHours.String())
}

func TestTodayAllAndCount(t *testing.T) {
	svc, _, userRepo := newTestService(t)
	alice := seedUser(t, userRepo, "alice")
	bob := seedUser(t, userRepo, "bob")

	_, err := svc.ClockIn(context.Background(), alice.ID)
	require.NoError(t, err)
	_, err = svc.ClockIn(context.Background(), bob.ID)
	require.NoError(t, err)

	sessions, err := svc.TodayAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	count, err := svc.ClockedInCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestConcurrentClockOutAndBreakUpdate(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")

	// Whichever order the two mutations land in, neither write may clobber
	// the other: the closed session must carry the break and deduct it.
	for i := 0; i < 50; i++ {
		seeded := seedOpenSession(t, attendanceRepo, u.ID, 9*time.Hour)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.ClockOut(context.Background(), u.ID)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.UpdateBreakDuration(context.Background(), seeded.ID, 60)
			assert.NoError(t, err)
		}()
		wg.Wait()

		final, err := svc.GetByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		require.True(t, final.IsClosed())
		require.Equal(t, 60, final.BreakDurationMinutes)
		assert.True(t, final.TotalHours.Equal(decimal.NewFromInt(8)), final.TotalHours.String())
		assert.True(t, final.OvertimeHours.IsZero())
	}
}

func TestConcurrentClockOutClosesOnce(t *testing.T) {
	svc, attendanceRepo, userRepo := newTestService(t)
	u := seedUser(t, userRepo, "jdoe")
	seedOpenSession(t, attendanceRepo, u.ID, 8*time.Hour)

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, err := svc.ClockOut(context.Background(), u.ID)
			errs <- err
		}()
	}

	var succeeded int
	for i := 0; i < workers; i++ {
		if err := <-errs; err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
		}
	}
	assert.Equal(t, 1, succeeded)
}
