package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/attendance"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const sessionColumns = `id, user_id, attendance_date, clock_in_time, clock_out_time,
	   break_duration_minutes, total_hours, overtime_hours, status, notes,
	   created_at, updated_at`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.AttendanceDate, &s.ClockInTime, &s.ClockOutTime,
		&s.BreakDurationMinutes, &s.TotalHours, &s.OvertimeHours, &s.Status, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *attendanceRepository) collect(rows pgx.Rows) ([]attendance.Session, error) {
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func (r *attendanceRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (
			id, user_id, attendance_date, clock_in_time, clock_out_time,
			break_duration_minutes, total_hours, overtime_hours, status, notes,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id
	`

	err := q.QueryRow(ctx, query,
		session.UserID,
		session.AttendanceDate,
		session.ClockInTime,
		session.ClockOutTime,
		session.BreakDurationMinutes,
		session.TotalHours,
		session.OvertimeHours,
		session.Status,
		session.Notes,
		session.CreatedAt,
		session.UpdatedAt,
	).Scan(&session.ID)

	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return session, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = $1`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session by id: %w", err)
	}

	return s, nil
}

func (r *attendanceRepository) Update(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET clock_out_time = $2, break_duration_minutes = $3, total_hours = $4,
			overtime_hours = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		session.ID, session.ClockOutTime, session.BreakDurationMinutes, session.TotalHours,
		session.OvertimeHours, session.Status, session.Notes, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

func (r *attendanceRepository) ByUserAndDate(ctx context.Context, userID string, date int64) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE user_id = $1 AND attendance_date = $2
		ORDER BY clock_in_time DESC`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions by user and date: %w", err)
	}

	return r.collect(rows)
}

func (r *attendanceRepository) OpenSessions(ctx context.Context, userID string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE user_id = $1 AND clock_out_time = 0
		ORDER BY clock_in_time DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open sessions: %w", err)
	}

	return r.collect(rows)
}

func (r *attendanceRepository) ByUserAndRange(ctx context.Context, userID string, start, end int64) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE user_id = $1 AND attendance_date >= $2 AND attendance_date <= $3
		ORDER BY attendance_date DESC`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions by user and range: %w", err)
	}

	return r.collect(rows)
}

func (r *attendanceRepository) ByUser(ctx context.Context, userID string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE user_id = $1
		ORDER BY attendance_date DESC, clock_in_time DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions by user: %w", err)
	}

	return r.collect(rows)
}

func (r *attendanceRepository) TodaySessions(ctx context.Context, date int64) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE attendance_date = $1
		ORDER BY clock_in_time DESC`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query today's sessions: %w", err)
	}

	return r.collect(rows)
}

func (r *attendanceRepository) CountClockedIn(ctx context.Context, date int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_sessions WHERE attendance_date = $1 AND clock_in_time <> 0`,
		date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clocked-in sessions: %w", err)
	}

	return count, nil
}

func (r *attendanceRepository) SumOvertime(ctx context.Context, userID string, start, end int64) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(overtime_hours), 0)
		FROM attendance_sessions
		WHERE user_id = $1 AND attendance_date >= $2 AND attendance_date <= $3
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, userID, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum overtime hours: %w", err)
	}

	return total, nil
}
