package cron

import (
	"context"
	"fmt"

	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/metrics"
	attendanceService "github.com/lazyhr/lazyhr-backend-go/internal/service/attendance"
	leaveService "github.com/lazyhr/lazyhr-backend-go/internal/service/leave"
)

// MetricsRefreshJob updates the pending-request and clocked-in gauges from
// the stores. Counters track events as they happen; these two are snapshots
// and need polling.
func MetricsRefreshJob(leaveSvc *leaveService.Service, attendanceSvc *attendanceService.Service) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pending, err := leaveSvc.PendingCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to count pending leave requests: %w", err)
		}
		metrics.PendingLeaveRequests.Set(float64(pending))

		clockedIn, err := attendanceSvc.ClockedInCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to count clocked-in sessions: %w", err)
		}
		metrics.ClockedInToday.Set(float64(clockedIn))

		return nil
	}
}
