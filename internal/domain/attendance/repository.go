package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// Update writes timestamps and metrics of an existing record in one statement
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetLatestByEmployee returns the record with the greatest clock_in, or nil when the employee has none
	GetLatestByEmployee(ctx context.Context, employeeID string) (*Attendance, error)

	// GetByEmployeeInRange returns the latest record with clock_in in [from, to), or nil
	GetByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (*Attendance, error)

	// List returns matching rows joined with employee and department, plus the total match count
	List(ctx context.Context, criteria LogCriteria) ([]Attendance, int64, error)
}
