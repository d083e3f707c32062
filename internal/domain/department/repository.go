package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, department Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	Update(ctx context.Context, department Department) (Department, error)
	Delete(ctx context.Context, id string) error

	// List returns one page ordered by name together with the total count.
	List(ctx context.Context, filter DepartmentFilter) ([]Department, int64, error)
	ListAll(ctx context.Context) ([]Department, error)
}
