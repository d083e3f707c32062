package department

import (
	"context"

	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
)

// PolicyResolver yields the attendance thresholds of a department.
// It fails with ErrDepartmentNotFound for unknown ids and has no side effects.
type PolicyResolver interface {
	Resolve(ctx context.Context, departmentID string) (Policy, error)
}

type DepartmentService interface {
	PolicyResolver

	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Get(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context, filter DepartmentFilter) (pagination.Result[DepartmentResponse], error)
	ListAll(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}
