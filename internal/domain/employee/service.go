package employee

import (
	"context"

	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee with its department
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error

	// ListEmployees returns one page, optionally narrowed to a department
	ListEmployees(ctx context.Context, filter EmployeeFilter) (pagination.Result[EmployeeResponse], error)

	// ListAllEmployees returns every employee, used by selection dropdowns
	ListAllEmployees(ctx context.Context, departmentID *string) ([]EmployeeResponse, error)
}
