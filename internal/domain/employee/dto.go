package employee

import (
	"strings"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID           string                         `json:"id"`
	Name         string                         `json:"name"`
	Email        string                         `json:"email"`
	Position     string                         `json:"position"`
	DepartmentID string                         `json:"department_id"`
	Department   *department.DepartmentResponse `json:"department,omitempty"`
	CreatedAt    string                         `json:"created_at,omitempty"`
	UpdatedAt    string                         `json:"updated_at,omitempty"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Position:     e.Position,
		DepartmentID: e.DepartmentID,
	}
	if e.Department != nil {
		dept := department.NewDepartmentResponse(*e.Department)
		resp.Department = &dept
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(validator.DateTimeLayout)
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.Format(validator.DateTimeLayout)
	}
	return resp
}

type CreateEmployeeRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Position     string `json:"position"`
	DepartmentID string `json:"department_id"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: ErrInvalidEmail.Error(),
		})
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Position     *string `json:"position,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: ErrInvalidEmail.Error(),
			})
		}
	}

	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position must not be empty",
		})
	}

	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	DepartmentID *string `json:"department_id,omitempty"`
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 15
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.DepartmentID != nil && validator.IsEmpty(*f.DepartmentID) {
		f.DepartmentID = nil
	}
	if err := ValidateDepartmentFilter(f.DepartmentID); err != nil {
		errs = append(errs, err...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateDepartmentFilter rejects a department_id filter that is not a UUID.
func ValidateDepartmentFilter(departmentID *string) validator.ValidationErrors {
	if departmentID == nil || validator.IsValidUUID(*departmentID) {
		return nil
	}
	return validator.ValidationErrors{{
		Field:   "department_id",
		Message: "department_id must be a valid UUID",
	}}
}
