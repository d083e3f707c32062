package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type departmentRepositoryImpl struct {
	db database.Querier
}

func NewDepartmentRepository(db database.Querier) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `id, name, max_clock_in_time, max_clock_out_time, created_at, updated_at`

// timeOfDayValue encodes a TimeOfDay for a postgres time column.
func timeOfDayValue(t department.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.SinceMidnight().Microseconds(), Valid: true}
}

func timeOfDayFrom(v pgtype.Time) department.TimeOfDay {
	return department.TimeOfDayFromDuration(time.Duration(v.Microseconds) * time.Microsecond)
}

func scanDepartment(row pgx.Row) (department.Department, error) {
	var (
		d             department.Department
		maxIn, maxOut pgtype.Time
	)
	if err := row.Scan(&d.ID, &d.Name, &maxIn, &maxOut, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return department.Department{}, err
	}
	d.MaxClockInTime = timeOfDayFrom(maxIn)
	d.MaxClockOutTime = timeOfDayFrom(maxOut)
	return d, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, max_clock_in_time, max_clock_out_time, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING ` + departmentColumns

	created, err := scanDepartment(q.QueryRow(ctx, query, d.Name, timeOfDayValue(d.MaxClockInTime), timeOfDayValue(d.MaxClockOutTime)))
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = $1`

	d, err := scanDepartment(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRow(err) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $2, max_clock_in_time = $3, max_clock_out_time = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + departmentColumns

	updated, err := scanDepartment(q.QueryRow(ctx, query, d.ID, d.Name, timeOfDayValue(d.MaxClockInTime), timeOfDayValue(d.MaxClockOutTime)))
	if err != nil {
		if isNoRow(err) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}
	return updated, nil
}

// Delete implements department.DepartmentRepository. Employees reference
// departments without cascade, so deleting one in use fails with 23503.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if isNoRow(err) {
		return department.ErrDepartmentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.DepartmentFilter) ([]department.Department, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		ORDER BY name ASC, id ASC
		LIMIT $1 OFFSET $2
	`
	items, err := r.query(ctx, q, query, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAll implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListAll(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)
	return r.query(ctx, q, `SELECT `+departmentColumns+` FROM departments ORDER BY name ASC, id ASC`)
}

func (r *departmentRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]department.Department, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return departments, nil
}
