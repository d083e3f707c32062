package attendance

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
)

type Status string

const (
	StatusOnTime Status = "on_time"
	StatusLate   Status = "late"
)

type Attendance struct {
	ID                string
	EmployeeID        string
	ClockIn           time.Time
	ClockOut          *time.Time
	Status            Status
	LatenessMinutes   int
	OvertimeMinutes   int
	EarlyLeaveMinutes int
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined on reads, with the employee's department; nil on writes.
	Employee *employee.Employee
}

func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// apply copies derived values onto the record.
func (a *Attendance) apply(m Metrics) {
	a.Status = m.Status
	a.LatenessMinutes = m.LatenessMinutes
	a.OvertimeMinutes = m.OvertimeMinutes
	a.EarlyLeaveMinutes = m.EarlyLeaveMinutes
}
