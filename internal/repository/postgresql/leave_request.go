package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `id, user_id, category, period, start_date, end_date,
	   total_days, reason, status, approver_id, approved_at, comments,
	   applied_at, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.Category, &lr.Period, &lr.StartDate, &lr.EndDate,
		&lr.TotalDays, &lr.Reason, &lr.Status, &lr.ApproverID, &lr.ApprovedAt, &lr.Comments,
		&lr.AppliedAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepository) collect(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, category, period, start_date, end_date, total_days,
			reason, status, approver_id, approved_at, comments,
			applied_at, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id
	`

	err := q.QueryRow(ctx, query,
		request.UserID,
		request.Category,
		request.Period,
		request.StartDate,
		request.EndDate,
		request.TotalDays,
		request.Reason,
		request.Status,
		request.ApproverID,
		request.ApprovedAt,
		request.Comments,
		request.AppliedAt,
		request.CreatedAt,
		request.UpdatedAt,
	).Scan(&request.ID)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by id: %w", err)
	}

	return lr, nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET category = $2, period = $3, start_date = $4, end_date = $5,
			total_days = $6, reason = $7, status = $8, approver_id = $9,
			approved_at = $10, comments = $11, updated_at = $12
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		request.ID, request.Category, request.Period, request.StartDate, request.EndDate,
		request.TotalDays, request.Reason, request.Status, request.ApproverID,
		request.ApprovedAt, request.Comments, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) ByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests WHERE user_id = $1 ORDER BY applied_at DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests by user: %w", err)
	}

	return r.collect(rows)
}

func (r *leaveRequestRepository) ByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests WHERE status = $1 ORDER BY applied_at DESC`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests by status: %w", err)
	}

	return r.collect(rows)
}

func (r *leaveRequestRepository) ByUserAndStatus(ctx context.Context, userID string, status leave.Status) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests WHERE user_id = $1 AND status = $2 ORDER BY applied_at DESC`

	rows, err := q.Query(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests by user and status: %w", err)
	}

	return r.collect(rows)
}

func (r *leaveRequestRepository) Pending(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests WHERE status = 'PENDING' ORDER BY applied_at ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending leave requests: %w", err)
	}

	return r.collect(rows)
}

func (r *leaveRequestRepository) CountPending(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = 'PENDING'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	return count, nil
}

func (r *leaveRequestRepository) FindOverlappingApproved(ctx context.Context, userID string, start, end int64) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE user_id = $1
		  AND status = 'APPROVED'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date ASC`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping approved leaves: %w", err)
	}

	return r.collect(rows)
}

func (r *leaveRequestRepository) ForTimestamp(ctx context.Context, millis int64) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE start_date = $1 OR (start_date <= $1 AND end_date >= $1)
		ORDER BY applied_at DESC`

	rows, err := q.Query(ctx, query, millis)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests for timestamp: %w", err)
	}

	return r.collect(rows)
}

func (r *leaveRequestRepository) SumApprovedDays(ctx context.Context, userID string, category leave.Category, from, to int64) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_days), 0)
		FROM leave_requests
		WHERE user_id = $1
		  AND category = $2
		  AND status = 'APPROVED'
		  AND start_date >= $3
		  AND start_date < $4
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, userID, category, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	return total, nil
}
