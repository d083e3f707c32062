package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn  = errors.New("employee is already clocked in")
	ErrNotClockedIn      = errors.New("employee has not clocked in")
	ErrAlreadyClockedOut = errors.New("employee has already clocked out")

	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrClockOutBeforeIn   = errors.New("clock_out must not be before clock_in")
)
