package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5/pgconn"
)

type EmployeeServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
	}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	dept, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return employee.EmployeeResponse{}, translateWriteError("create", err)
	}

	created.Department = &dept
	return employee.NewEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Position != nil {
		current.Position = *req.Position
	}
	if req.DepartmentID != nil && *req.DepartmentID != current.DepartmentID {
		dept, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		current.DepartmentID = dept.ID
		current.Department = &dept
	}

	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		return employee.EmployeeResponse{}, translateWriteError("update", err)
	}

	updated.Department = current.Department
	return employee.NewEmployeeResponse(updated), nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (pagination.Result[employee.EmployeeResponse], error) {
	if err := filter.Validate(); err != nil {
		return pagination.Result[employee.EmployeeResponse]{}, err
	}

	items, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return pagination.Result[employee.EmployeeResponse]{}, fmt.Errorf("failed to list employees: %w", err)
	}

	return pagination.Map(pagination.Result[employee.Employee]{
		Items:   items,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.Limit,
	}, employee.NewEmployeeResponse), nil
}

func (s *EmployeeServiceImpl) ListAllEmployees(ctx context.Context, departmentID *string) ([]employee.EmployeeResponse, error) {
	if errs := employee.ValidateDepartmentFilter(departmentID); errs != nil {
		return nil, errs
	}

	items, err := s.employeeRepo.ListAll(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(items))
	for _, e := range items {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

func translateWriteError(op string, err error) error {
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return employee.ErrEmailExists
		case "23503": // foreign_key_violation
			return department.ErrDepartmentNotFound
		}
	}
	return fmt.Errorf("failed to %s employee: %w", op, err)
}
