package department

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// DepartmentResponse represents the response structure for a department.
type DepartmentResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MaxClockInTime  string `json:"max_clock_in_time"`
	MaxClockOutTime string `json:"max_clock_out_time"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// NewDepartmentResponse maps an entity to its wire form.
func NewDepartmentResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:              d.ID,
		Name:            d.Name,
		MaxClockInTime:  d.MaxClockInTime.String(),
		MaxClockOutTime: d.MaxClockOutTime.String(),
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(validator.DateTimeLayout)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(validator.DateTimeLayout)
	}
	return resp
}

// CreateDepartmentRequest represents the request structure for creating a department.
type CreateDepartmentRequest struct {
	Name            string `json:"name"`
	MaxClockInTime  string `json:"max_clock_in_time"`  // HH:MM or HH:MM:SS
	MaxClockOutTime string `json:"max_clock_out_time"` // HH:MM or HH:MM:SS
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if _, err := ParseTimeOfDay(r.MaxClockInTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "max_clock_in_time",
			Message: "max_clock_in_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if _, err := ParseTimeOfDay(r.MaxClockOutTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "max_clock_out_time",
			Message: "max_clock_out_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateDepartmentRequest represents the request structure for updating a department.
type UpdateDepartmentRequest struct {
	ID              string  `json:"-"`
	Name            *string `json:"name,omitempty"`
	MaxClockInTime  *string `json:"max_clock_in_time,omitempty"`
	MaxClockOutTime *string `json:"max_clock_out_time,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Name
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 100 characters",
			})
		}
	}

	if r.MaxClockInTime != nil {
		if _, err := ParseTimeOfDay(*r.MaxClockInTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "max_clock_in_time",
				Message: "max_clock_in_time must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if r.MaxClockOutTime != nil {
		if _, err := ParseTimeOfDay(*r.MaxClockOutTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "max_clock_out_time",
				Message: "max_clock_out_time must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DepartmentFilter struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *DepartmentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 15 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
