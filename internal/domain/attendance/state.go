package attendance

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
)

// State is where an employee stands, judged from their latest record only.
// There is no calendar-day reset.
type State string

const (
	StateNone   State = "none"
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// StateOf derives the state from the latest record, nil meaning none.
func StateOf(latest *Attendance) State {
	switch {
	case latest == nil:
		return StateNone
	case latest.IsOpen():
		return StateOpen
	default:
		return StateClosed
	}
}

// CanClockIn fails with ErrAlreadyClockedIn while a record is open.
func (s State) CanClockIn() error {
	if s == StateOpen {
		return ErrAlreadyClockedIn
	}
	return nil
}

// CanClockOut requires an open record.
func (s State) CanClockOut() error {
	switch s {
	case StateNone:
		return ErrNotClockedIn
	case StateClosed:
		return ErrAlreadyClockedOut
	}
	return nil
}

// Open starts a new record at now. The caller has checked CanClockIn.
func Open(id, employeeID string, now time.Time, policy department.Policy, loc *time.Location) Attendance {
	rec := Attendance{
		ID:         id,
		EmployeeID: employeeID,
		ClockIn:    now,
	}
	rec.apply(Compute(rec.ClockIn, nil, policy, loc))
	return rec
}

// Close fills clock_out on an open record and recomputes every metric.
func Close(rec Attendance, now time.Time, policy department.Policy, loc *time.Location) Attendance {
	rec.ClockOut = &now
	rec.apply(Compute(rec.ClockIn, rec.ClockOut, policy, loc))
	return rec
}

// Manual writes both timestamps onto rec (an existing record or a fresh one)
// without consulting the state of the employee. It is the correction path
// and can leave more than one open record behind.
func Manual(rec Attendance, clockIn time.Time, clockOut *time.Time, policy department.Policy, loc *time.Location) Attendance {
	rec.ClockIn = clockIn
	rec.ClockOut = clockOut
	rec.apply(Compute(rec.ClockIn, rec.ClockOut, policy, loc))
	return rec
}
