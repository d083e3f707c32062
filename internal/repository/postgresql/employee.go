package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type employeeRepository struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeSelect = `
	SELECT e.id, e.name, e.email, e.position, e.department_id, e.created_at, e.updated_at,
	       d.id, d.name, d.max_clock_in_time, d.max_clock_out_time, d.created_at, d.updated_at
	FROM employees e
	JOIN departments d ON d.id = e.department_id
`

// scanEmployee reads the column list of employeeSelect.
func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e             employee.Employee
		d             department.Department
		maxIn, maxOut pgtype.Time
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Position, &e.DepartmentID, &e.CreatedAt, &e.UpdatedAt,
		&d.ID, &d.Name, &maxIn, &maxOut, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	d.MaxClockInTime = timeOfDayFrom(maxIn)
	d.MaxClockOutTime = timeOfDayFrom(maxOut)
	e.Department = &d
	return e, nil
}

func (r *employeeRepository) getOne(ctx context.Context, where string, arg interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+where, arg))
	if err != nil {
		if isNoRow(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, name, email, position, department_id, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, e.Name, e.Email, e.Position, e.DepartmentID).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, `WHERE e.id = $1`, id)
}

// GetByIDForUpdate implements employee.EmployeeRepository. Only the
// employee row is locked; the department stays readable.
func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, `WHERE e.id = $1 FOR UPDATE OF e`, id)
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return r.getOne(ctx, `WHERE e.email = $1`, email)
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $2, email = $3, position = $4, department_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, e.ID, e.Name, e.Email, e.Position, e.DepartmentID).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isNoRow(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return e, nil
}

// Delete implements employee.EmployeeRepository. Attendance rows go with
// the employee (ON DELETE CASCADE).
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if isNoRow(err) {
		return employee.ErrEmployeeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ""
	args := []interface{}{}
	if filter.DepartmentID != nil {
		where = " WHERE e.department_id = $1"
		args = append(args, *filter.DepartmentID)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := employeeSelect + where + fmt.Sprintf(`
	ORDER BY e.name ASC, e.id ASC
	LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	items, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAll implements employee.EmployeeRepository.
func (r *employeeRepository) ListAll(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect
	args := []interface{}{}
	if departmentID != nil {
		query += ` WHERE e.department_id = $1`
		args = append(args, *departmentID)
	}
	query += `
	ORDER BY e.name ASC, e.id ASC`

	return r.query(ctx, q, query, args...)
}

func (r *employeeRepository) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}
