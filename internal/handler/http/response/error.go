package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance state errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		ConflictWithCode(w, "ALREADY_CLOCKED_IN", "Employee is already clocked in")
	case errors.Is(err, attendance.ErrNotClockedIn):
		ConflictWithCode(w, "NOT_CLOCKED_IN", "Employee has not clocked in")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		ConflictWithCode(w, "ALREADY_CLOCKED_OUT", "Employee has already clocked out")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrClockOutBeforeIn):
		ValidationError(w, map[string]string{"clock_out": err.Error()})

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		ConflictWithCode(w, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, employee.ErrInvalidEmail):
		ValidationError(w, map[string]string{"email": err.Error()})

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		ConflictWithCode(w, "NAME_EXISTS", "Department name already exists")
	case errors.Is(err, department.ErrDepartmentInUse):
		ConflictWithCode(w, "DEPARTMENT_IN_USE", "Department still has employees")
	case errors.Is(err, department.ErrInvalidTimeOfDay):
		BadRequest(w, err.Error(), nil)

	// Infrastructure
	case errors.Is(err, export.ErrUnsupportedFormat):
		ValidationError(w, map[string]string{"format": "format must be one of: csv, xlsx"})
	case errors.Is(err, pagination.ErrUnknownShape):
		BadRequest(w, "Unrecognized pagination payload", nil)
	case errors.Is(err, lock.ErrLockTimeout):
		ServiceUnavailable(w, "Another action for this employee is in progress, try again")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
