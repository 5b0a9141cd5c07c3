package leave

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/clock"
)

// Yearly allocations per category. SPECIAL_HOLIDAY has no allocation and is
// reported as usage only.
var (
	annualAllocation  = decimal.NewFromInt(21)
	sickAllocation    = decimal.NewFromInt(14)
	privateAllocation = decimal.NewFromInt(5)
)

// BalanceCalculator derives yearly balances from stored leave requests.
// Nothing is persisted; calling it twice never changes the result.
type BalanceCalculator struct {
	leaveRepo leave.LeaveRequestRepository
	userRepo  user.UserRepository
	clk       *clock.Clock
}

func NewBalanceCalculator(leaveRepo leave.LeaveRequestRepository, userRepo user.UserRepository, clk *clock.Clock) *BalanceCalculator {
	return &BalanceCalculator{leaveRepo: leaveRepo, userRepo: userRepo, clk: clk}
}

// Balance returns the per-category summary for one calendar year. A request
// counts toward the year its start date falls in, even when it ends in the
// next year. Remaining is not clamped and may go negative.
func (c *BalanceCalculator) Balance(ctx context.Context, userID string, year int) (leave.BalanceSummary, error) {
	exists, err := c.userRepo.Exists(ctx, userID)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return leave.BalanceSummary{}, user.ErrUserNotFound
	}

	from, to := c.clk.YearRange(year)

	annual, err := c.categoryBalance(ctx, userID, leave.CategoryAnnual, annualAllocation, from, to)
	if err != nil {
		return leave.BalanceSummary{}, err
	}
	sick, err := c.categoryBalance(ctx, userID, leave.CategorySick, sickAllocation, from, to)
	if err != nil {
		return leave.BalanceSummary{}, err
	}
	private, err := c.categoryBalance(ctx, userID, leave.CategoryPrivate, privateAllocation, from, to)
	if err != nil {
		return leave.BalanceSummary{}, err
	}

	special, err := c.leaveRepo.SumApprovedDays(ctx, userID, leave.CategorySpecialHoliday, from, to)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	return leave.BalanceSummary{
		UserID:         userID,
		Year:           year,
		Annual:         annual,
		Sick:           sick,
		Private:        private,
		SpecialHoliday: leave.CategoryBalance{Used: special},
	}, nil
}

// CurrentBalance is Balance for the year now in progress.
func (c *BalanceCalculator) CurrentBalance(ctx context.Context, userID string) (leave.BalanceSummary, error) {
	return c.Balance(ctx, userID, c.clk.Now().Year())
}

func (c *BalanceCalculator) categoryBalance(ctx context.Context, userID string, category leave.Category, allocated decimal.Decimal, from, to int64) (leave.CategoryBalance, error) {
	used, err := c.leaveRepo.SumApprovedDays(ctx, userID, category, from, to)
	if err != nil {
		return leave.CategoryBalance{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	remaining := allocated.Sub(used)
	return leave.CategoryBalance{
		Allocated: &allocated,
		Used:      used,
		Remaining: &remaining,
	}, nil
}
