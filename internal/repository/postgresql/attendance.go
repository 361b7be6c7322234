package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/progenxxx/hris-sub011/internal/domain/attendance"
	"github.com/progenxxx/hris-sub011/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, attendance_date,
	   time_in, time_out, break_in, break_out,
	   is_nightshift, next_day_timeout,
	   late_minutes, undertime_minutes, hours_worked,
	   source, created_at, updated_at`

// buildFilterWhere turns a domain filter into a WHERE clause with positional
// args. Callers append further conditions continuing from the returned index.
func buildFilterWhere(filter attendance.Filter) (string, []interface{}, int) {
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil {
		baseWhere += fmt.Sprintf(" AND attendance_date = $%d", argIdx)
		args = append(args, filter.Date.Format("2006-01-02"))
		argIdx++
	}
	if filter.StartDate != nil {
		baseWhere += fmt.Sprintf(" AND attendance_date >= $%d", argIdx)
		args = append(args, filter.StartDate.Format("2006-01-02"))
		argIdx++
	}
	if filter.EndDate != nil {
		baseWhere += fmt.Sprintf(" AND attendance_date <= $%d", argIdx)
		args = append(args, filter.EndDate.Format("2006-01-02"))
		argIdx++
	}

	return baseWhere, args, argIdx
}

// Count implements attendance.AttendanceRepository.
func (a *attendanceRepository) Count(ctx context.Context, filter attendance.Filter) (int64, error) {
	q := database.QuerierFrom(ctx, a.db)

	baseWhere, args, _ := buildFilterWhere(filter)
	query := "SELECT COUNT(*) FROM attendances WHERE " + baseWhere

	var total int64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	return total, nil
}

// ListChunk implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListChunk(ctx context.Context, filter attendance.Filter, afterID string, limit int) ([]attendance.Record, error) {
	q := database.QuerierFrom(ctx, a.db)

	baseWhere, args, argIdx := buildFilterWhere(filter)
	if afterID != "" {
		baseWhere += fmt.Sprintf(" AND id > $%d", argIdx)
		args = append(args, afterID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE %s
		ORDER BY id
		LIMIT $%d
	`, attendanceColumns, baseWhere, argIdx)
	args = append(args, limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date,
			&rec.TimeIn, &rec.TimeOut, &rec.BreakIn, &rec.BreakOut,
			&rec.IsNightshift, &rec.NextDayTimeout,
			&rec.LateMinutes, &rec.UndertimeMinutes, &rec.HoursWorked,
			&rec.Source, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}

	return records, nil
}

// UpdateMetrics implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateMetrics(ctx context.Context, rec attendance.Record) error {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		UPDATE attendances
		SET late_minutes = $1,
		    undertime_minutes = $2,
		    hours_worked = $3,
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.LateMinutes,
		rec.UndertimeMinutes,
		rec.HoursWorked,
		rec.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance metrics: %w", err)
	}

	return nil
}

// UpdateRepair implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateRepair(ctx context.Context, rec attendance.Record) error {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		UPDATE attendances
		SET is_nightshift = $1,
		    time_out = $2,
		    next_day_timeout = $3,
		    source = $4,
		    late_minutes = $5,
		    undertime_minutes = $6,
		    hours_worked = $7,
		    updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.IsNightshift,
		rec.TimeOut,
		rec.NextDayTimeout,
		rec.Source,
		rec.LateMinutes,
		rec.UndertimeMinutes,
		rec.HoursWorked,
		rec.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to repair attendance: %w", err)
	}

	return nil
}
