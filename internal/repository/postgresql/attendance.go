package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hrpoint/attendance-backend-go/internal/domain/attendance"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, date, first_clock_in, last_clock_out,
	   num_clock_ins, total_hours_worked, created_at, updated_at`

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	query := `
		INSERT INTO attendances (
			id, employee_id, date, first_clock_in, last_clock_out,
			num_clock_ins, total_hours_worked
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	rec.ID = uuid.NewString()
	err := a.db.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.FirstClockIn,
		rec.LastClockOut,
		rec.NumClockIns,
		rec.TotalHoursWorked,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var rec attendance.AttendanceRecord
	err := a.db.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.FirstClockIn, &rec.LastClockOut,
		&rec.NumClockIns, &rec.TotalHoursWorked, &rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record yet for this day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	query := `
		UPDATE attendances
		SET first_clock_in = $2,
			last_clock_out = $3,
			num_clock_ins = $4,
			total_hours_worked = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := a.db.QueryRow(ctx, query,
		rec.ID,
		rec.FirstClockIn,
		rec.LastClockOut,
		rec.NumClockIns,
		rec.TotalHoursWorked,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return rec, nil
}

// ListOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenSessions(ctx context.Context) ([]attendance.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE last_clock_out IS NULL
		ORDER BY date, employee_id
	`

	rows, err := a.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.FirstClockIn, &rec.LastClockOut,
			&rec.NumClockIns, &rec.TotalHoursWorked, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}

	return records, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.AttendanceRecord, int64, error) {
	conditions := []string{"employee_id = $1"}
	args := []interface{}{employeeID}

	if filter.From != "" {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + where
	if err := a.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, len(args)-1, len(args))

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.FirstClockIn, &rec.LastClockOut,
			&rec.NumClockIns, &rec.TotalHoursWorked, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return records, total, nil
}
