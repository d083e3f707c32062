package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate locks the employee row until the surrounding
	// transaction ends. It must run inside WithinTransaction.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListAll(ctx context.Context, departmentID *string) ([]Employee, error)
}
