package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/clock"
	"github.com/lazyhr/lazyhr-backend-go/internal/repository/memory"
)

func newBalanceCalculator(t *testing.T) (*BalanceCalculator, *memory.LeaveRequestRepository, *memory.UserRepository) {
	t.Helper()
	leaveRepo := memory.NewLeaveRequestRepository()
	userRepo := memory.NewUserRepository()
	clk := clock.NewFixed(time.UTC, testNow)
	return NewBalanceCalculator(leaveRepo, userRepo, clk), leaveRepo, userRepo
}

func seedRequest(t *testing.T, repo *memory.LeaveRequestRepository, userID string, category leave.Category, start time.Time, days float64, status leave.Status) {
	t.Helper()
	_, err := repo.Create(context.Background(), leave.LeaveRequest{
		UserID:    userID,
		Category:  category,
		Period:    leave.PeriodFullDay,
		StartDate: start.UnixMilli(),
		EndDate:   start.Add(time.Duration(days*24) * time.Hour).UnixMilli(),
		TotalDays: decimal.NewFromFloat(days),
		Status:    status,
	})
	require.NoError(t, err)
}

func TestBalanceEmptyYear(t *testing.T) {
	calc, _, userRepo := newBalanceCalculator(t)
	u := seedUser(t, userRepo, "jdoe")

	summary, err := calc.Balance(context.Background(), u.ID, 2026)
	require.NoError(t, err)

	assert.Equal(t, u.ID, summary.UserID)
	assert.Equal(t, 2026, summary.Year)
	assert.True(t, summary.Annual.Allocated.Equal(decimal.NewFromInt(21)))
	assert.True(t, summary.Annual.Used.IsZero())
	assert.True(t, summary.Annual.Remaining.Equal(decimal.NewFromInt(21)))
	assert.True(t, summary.Sick.Allocated.Equal(decimal.NewFromInt(14)))
	assert.True(t, summary.Private.Allocated.Equal(decimal.NewFromInt(5)))

	// Special holiday has no allocation, only usage.
	assert.Nil(t, summary.SpecialHoliday.Allocated)
	assert.Nil(t, summary.SpecialHoliday.Remaining)
	assert.True(t, summary.SpecialHoliday.Used.IsZero())
}

func TestBalanceCountsApprovedOnly(t *testing.T) {
	calc, leaveRepo, userRepo := newBalanceCalculator(t)
	u := seedUser(t, userRepo, "jdoe")

	june := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, june, 5, leave.StatusApproved)
	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, june.AddDate(0, 1, 0), 3, leave.StatusPending)
	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, june.AddDate(0, 2, 0), 2, leave.StatusRejected)
	seedRequest(t, leaveRepo, u.ID, leave.CategorySick, june, 1.5, leave.StatusApproved)

	summary, err := calc.Balance(context.Background(), u.ID, 2026)
	require.NoError(t, err)

	assert.True(t, summary.Annual.Used.Equal(decimal.NewFromInt(5)), summary.Annual.Used.String())
	assert.True(t, summary.Annual.Remaining.Equal(decimal.NewFromInt(16)))
	assert.True(t, summary.Sick.Used.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, summary.Sick.Remaining.Equal(decimal.NewFromFloat(12.5)))
}

func TestBalanceYearBucketByStartDate(t *testing.T) {
	calc, leaveRepo, userRepo := newBalanceCalculator(t)
	u := seedUser(t, userRepo, "jdoe")

	// Starts Dec 30 2025 and runs into January; it belongs to 2025.
	dec := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)
	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, dec, 5, leave.StatusApproved)

	summary2025, err := calc.Balance(context.Background(), u.ID, 2025)
	require.NoError(t, err)
	assert.True(t, summary2025.Annual.Used.Equal(decimal.NewFromInt(5)))

	summary2026, err := calc.Balance(context.Background(), u.ID, 2026)
	require.NoError(t, err)
	assert.True(t, summary2026.Annual.Used.IsZero())
}

func TestBalanceRemainingGoesNegative(t *testing.T) {
	calc, leaveRepo, userRepo := newBalanceCalculator(t)
	u := seedUser(t, userRepo, "jdoe")

	// 26 approved days against a 21 day allocation. Nothing clamps the
	// remainder; the deficit is visible.
	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), 20, leave.StatusApproved)
	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC), 6, leave.StatusApproved)

	summary, err := calc.Balance(context.Background(), u.ID, 2026)
	require.NoError(t, err)

	assert.True(t, summary.Annual.Used.Equal(decimal.NewFromInt(26)))
	assert.True(t, summary.Annual.Remaining.Equal(decimal.NewFromInt(-5)), summary.Annual.Remaining.String())
}

func TestBalanceIsIdempotent(t *testing.T) {
	calc, leaveRepo, userRepo := newBalanceCalculator(t)
	u := seedUser(t, userRepo, "jdoe")

	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), 4, leave.StatusApproved)

	first, err := calc.Balance(context.Background(), u.ID, 2026)
	require.NoError(t, err)
	second, err := calc.Balance(context.Background(), u.ID, 2026)
	require.NoError(t, err)

	// Reading a balance never consumes anything.
	assert.True(t, first.Annual.Used.Equal(second.Annual.Used))
	assert.True(t, first.Annual.Remaining.Equal(*second.Annual.Remaining))
}

func TestBalanceUnknownUser(t *testing.T) {
	calc, _, _ := newBalanceCalculator(t)

	_, err := calc.Balance(context.Background(), "no-such-user", 2026)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestCurrentBalanceUsesClockYear(t *testing.T) {
	calc, leaveRepo, userRepo := newBalanceCalculator(t)
	u := seedUser(t, userRepo, "jdoe")

	seedRequest(t, leaveRepo, u.ID, leave.CategoryAnnual, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), 2, leave.StatusApproved)

	summary, err := calc.CurrentBalance(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2026, summary.Year)
	assert.True(t, summary.Annual.Used.Equal(decimal.NewFromInt(2)))
}

func TestBalanceSpecialHolidayUsedOnly(t *testing.T) {
	calc, leaveRepo, userRepo := newBalanceCalculator(t)
	u := seedUser(t, userRepo, "jdoe")

	seedRequest(t, leaveRepo, u.ID, leave.CategorySpecialHoliday, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), 3, leave.StatusApproved)

	summary, err := calc.Balance(context.Background(), u.ID, 2026)
	require.NoError(t, err)
	assert.True(t, summary.SpecialHoliday.Used.Equal(decimal.NewFromInt(3)))
	assert.Nil(t, summary.SpecialHoliday.Allocated)
	assert.Nil(t, summary.SpecialHoliday.Remaining)
}
