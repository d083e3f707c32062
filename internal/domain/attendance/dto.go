package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK ACTIONS
// ========================================

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockInRequest) Validate() error {
	return validateEmployeeID(r.EmployeeID)
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockOutRequest) Validate() error {
	return validateEmployeeID(r.EmployeeID)
}

// validateEmployeeID reports a missing id as a validation error. An id that
// is not a UUID cannot name any employee, so it reads as not found.
func validateEmployeeID(id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ManualEntryRequest carries naive local timestamps ("YYYY-MM-DD HH:MM:SS").
// clock_out may be omitted or empty.
type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	ClockIn    string  `json:"clock_in"`
	ClockOut   *string `json:"clock_out,omitempty"`
}

// Validate checks presence only. Times parses and orders the timestamps.
func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ClockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in is required",
		})
	}

	if r.ClockOut != nil && validator.IsEmpty(*r.ClockOut) {
		r.ClockOut = nil
	}

	if len(errs) > 0 {
		return errs
	}
	return validateEmployeeID(r.EmployeeID)
}

// Times interprets the request timestamps in loc. It fails when either is
// malformed or when clock_out lands before clock_in.
func (r *ManualEntryRequest) Times(loc *time.Location) (time.Time, *time.Time, error) {
	var errs validator.ValidationErrors

	clockIn, ok := validator.ParseLocalDateTime(r.ClockIn, loc)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be in YYYY-MM-DD HH:MM:SS format",
		})
	}

	var clockOut *time.Time
	if r.ClockOut != nil {
		out, ok := validator.ParseLocalDateTime(*r.ClockOut, loc)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
		clockOut = &out
	}

	if len(errs) > 0 {
		return time.Time{}, nil, errs
	}

	if clockOut != nil && clockOut.Before(clockIn) {
		return time.Time{}, nil, validator.ValidationErrors{{
			Field:   "clock_out",
			Message: ErrClockOutBeforeIn.Error(),
		}}
	}
	return clockIn, clockOut, nil
}

// ========================================
// VIEWS
// ========================================

// AttendanceResponse is the record as clients see it. The export rows are
// built from this same value.
type AttendanceResponse struct {
	ID                string                     `json:"id"`
	EmployeeID        string                     `json:"employee_id"`
	ClockIn           string                     `json:"clock_in"`
	ClockOut          *string                    `json:"clock_out"`
	Status            Status                     `json:"status"`
	LatenessMinutes   int                        `json:"lateness_minutes"`
	OvertimeMinutes   int                        `json:"overtime_minutes"`
	EarlyLeaveMinutes int                        `json:"early_leave_minutes"`
	Employee          *employee.EmployeeResponse `json:"employee,omitempty"`
	CreatedAt         string                     `json:"created_at,omitempty"`
	UpdatedAt         string                     `json:"updated_at,omitempty"`
}

func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		ClockIn:           validator.FormatLocalDateTime(a.ClockIn, loc),
		Status:            a.Status,
		LatenessMinutes:   a.LatenessMinutes,
		OvertimeMinutes:   a.OvertimeMinutes,
		EarlyLeaveMinutes: a.EarlyLeaveMinutes,
	}
	if a.ClockOut != nil {
		out := validator.FormatLocalDateTime(*a.ClockOut, loc)
		resp.ClockOut = &out
	}
	if a.Employee != nil {
		emp := employee.NewEmployeeResponse(*a.Employee)
		resp.Employee = &emp
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = validator.FormatLocalDateTime(a.CreatedAt, loc)
	}
	if !a.UpdatedAt.IsZero() {
		resp.UpdatedAt = validator.FormatLocalDateTime(a.UpdatedAt, loc)
	}
	return resp
}

// AttendanceStatusResponse tells a client which clock action is available.
type AttendanceStatusResponse struct {
	EmployeeID  string              `json:"employee_id"`
	State       State               `json:"state"`
	CanClockIn  bool                `json:"can_clock_in"`
	CanClockOut bool                `json:"can_clock_out"`
	Latest      *AttendanceResponse `json:"latest"`
}

// ========================================
// LOG
// ========================================

type LogQuery struct {
	Date         *string `json:"date,omitempty"` // YYYY-MM-DD
	DepartmentID *string `json:"department_id,omitempty"`
	Page         int     `json:"page"`
}

func (q *LogQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if q.Page == 0 {
		q.Page = 1
	}

	if q.Date != nil {
		d := strings.TrimSpace(*q.Date)
		if d == "" {
			q.Date = nil
		} else if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			q.Date = &d
		}
	}

	if q.DepartmentID != nil && validator.IsEmpty(*q.DepartmentID) {
		q.DepartmentID = nil
	}
	if q.DepartmentID != nil && !validator.IsValidUUID(*q.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Criteria turns the query into repository bounds. The date becomes the
// half-open range [00:00, next 00:00) in loc. A limit of 0 means no paging.
func (q LogQuery) Criteria(loc *time.Location, limit int) LogCriteria {
	c := LogCriteria{DepartmentID: q.DepartmentID, Limit: limit}
	if q.Date != nil {
		if day, ok := validator.IsValidDate(*q.Date); ok {
			from, to := validator.LocalDayBounds(day, loc)
			c.From, c.To = &from, &to
		}
	}
	if limit > 0 && q.Page > 1 {
		c.Offset = (q.Page - 1) * limit
	}
	return c
}

// LogCriteria is what the repository filters on. Rows come back ordered by
// clock_in DESC, id DESC.
type LogCriteria struct {
	From         *time.Time
	To           *time.Time
	DepartmentID *string
	Limit        int
	Offset       int
}
