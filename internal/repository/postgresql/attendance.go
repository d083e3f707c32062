package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRepository struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.clock_in, a.clock_out, a.status,
	a.lateness_minutes, a.overtime_minutes, a.early_leave_minutes, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att    attendance.Attendance
		status string
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.ClockIn, &att.ClockOut, &status,
		&att.LatenessMinutes, &att.OvertimeMinutes, &att.EarlyLeaveMinutes, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Status = attendance.Status(status)
	return att, nil
}

// scanAttendanceJoined reads attendanceColumns followed by the employee and
// department columns of the log query.
func scanAttendanceJoined(row pgx.Row) (attendance.Attendance, error) {
	var (
		att           attendance.Attendance
		status        string
		e             employee.Employee
		d             department.Department
		maxIn, maxOut pgtype.Time
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.ClockIn, &att.ClockOut, &status,
		&att.LatenessMinutes, &att.OvertimeMinutes, &att.EarlyLeaveMinutes, &att.CreatedAt, &att.UpdatedAt,
		&e.ID, &e.Name, &e.Email, &e.Position, &e.DepartmentID,
		&d.ID, &d.Name, &maxIn, &maxOut,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Status = attendance.Status(status)
	d.MaxClockInTime = timeOfDayFrom(maxIn)
	d.MaxClockOutTime = timeOfDayFrom(maxOut)
	e.Department = &d
	att.Employee = &e
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, clock_in, clock_out, status,
			lateness_minutes, overtime_minutes, early_leave_minutes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, att.ClockIn, att.ClockOut, string(att.Status),
		att.LatenessMinutes, att.OvertimeMinutes, att.EarlyLeaveMinutes,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository. Timestamps and metrics
// are written by the same statement.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_in = $2, clock_out = $3, status = $4,
		    lateness_minutes = $5, overtime_minutes = $6, early_leave_minutes = $7,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.ClockIn, att.ClockOut, string(att.Status),
		att.LatenessMinutes, att.OvertimeMinutes, att.EarlyLeaveMinutes,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if isNoRow(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRow(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

func (a *attendanceRepository) getOptional(ctx context.Context, query string, args ...interface{}) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &att, nil
}

// GetLatestByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		ORDER BY a.clock_in DESC, a.id DESC
		LIMIT 1
	`
	att, err := a.getOptional(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest attendance: %w", err)
	}
	return att, nil
}

// GetByEmployeeInRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (*attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.clock_in >= $2 AND a.clock_in < $3
		ORDER BY a.clock_in DESC, a.id DESC
		LIMIT 1
	`
	att, err := a.getOptional(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance in range: %w", err)
	}
	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, c attendance.LogCriteria) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	var conds []string
	args := []interface{}{}
	argIdx := 1

	if c.From != nil {
		conds = append(conds, fmt.Sprintf("a.clock_in >= $%d", argIdx))
		args = append(args, *c.From)
		argIdx++
	}
	if c.To != nil {
		conds = append(conds, fmt.Sprintf("a.clock_in < $%d", argIdx))
		args = append(args, *c.To)
		argIdx++
	}
	if c.DepartmentID != nil {
		conds = append(conds, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *c.DepartmentID)
		argIdx++
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := `
		SELECT ` + attendanceColumns + `,
			e.id, e.name, e.email, e.position, e.department_id,
			d.id, d.name, d.max_clock_in_time, d.max_clock_out_time
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN departments d ON d.id = e.department_id` + where + `
		ORDER BY a.clock_in DESC, a.id DESC`
	if c.Limit > 0 {
		selectQuery += fmt.Sprintf(`
		LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
		args = append(args, c.Limit, c.Offset)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendanceJoined(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}
