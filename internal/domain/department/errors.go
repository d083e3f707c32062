package department

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department with this name already exists")
	ErrDepartmentInUse      = errors.New("department still has employees")
	ErrInvalidTimeOfDay     = errors.New("invalid time of day")
)
