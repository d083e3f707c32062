package department

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5/pgconn"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
}

func NewDepartmentService(departmentRepo department.DepartmentRepository) department.DepartmentService {
	return &DepartmentServiceImpl{departmentRepo: departmentRepo}
}

// Resolve implements department.PolicyResolver.
func (s *DepartmentServiceImpl) Resolve(ctx context.Context, departmentID string) (department.Policy, error) {
	d, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return department.Policy{}, err
	}
	return d.Policy(), nil
}

func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	// Validate already checked both formats
	maxIn, _ := department.ParseTimeOfDay(req.MaxClockInTime)
	maxOut, _ := department.ParseTimeOfDay(req.MaxClockOutTime)

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:            req.Name,
		MaxClockInTime:  maxIn,
		MaxClockOutTime: maxOut,
	})
	if err != nil {
		if isPgCode(err, "23505") { // unique_violation
			return department.DepartmentResponse{}, department.ErrDepartmentNameExists
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}

	return department.NewDepartmentResponse(created), nil
}

func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(d), nil
}

func (s *DepartmentServiceImpl) List(ctx context.Context, filter department.DepartmentFilter) (pagination.Result[department.DepartmentResponse], error) {
	if err := filter.Validate(); err != nil {
		return pagination.Result[department.DepartmentResponse]{}, err
	}

	items, total, err := s.departmentRepo.List(ctx, filter)
	if err != nil {
		return pagination.Result[department.DepartmentResponse]{}, fmt.Errorf("failed to list departments: %w", err)
	}

	return pagination.Map(pagination.Result[department.Department]{
		Items:   items,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.Limit,
	}, department.NewDepartmentResponse), nil
}

func (s *DepartmentServiceImpl) ListAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	items, err := s.departmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	resp := make([]department.DepartmentResponse, 0, len(items))
	for _, d := range items {
		resp = append(resp, department.NewDepartmentResponse(d))
	}
	return resp, nil
}

// Update changes only the fields present in req. Stored attendance metrics
// keep the thresholds they were computed with.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	current, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.MaxClockInTime != nil {
		current.MaxClockInTime, _ = department.ParseTimeOfDay(*req.MaxClockInTime)
	}
	if req.MaxClockOutTime != nil {
		current.MaxClockOutTime, _ = department.ParseTimeOfDay(*req.MaxClockOutTime)
	}

	updated, err := s.departmentRepo.Update(ctx, current)
	if err != nil {
		if isPgCode(err, "23505") {
			return department.DepartmentResponse{}, department.ErrDepartmentNameExists
		}
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.DepartmentResponse{}, err
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to update department: %w", err)
	}

	return department.NewDepartmentResponse(updated), nil
}

func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		if isPgCode(err, "23503") { // foreign_key_violation
			return department.ErrDepartmentInUse
		}
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
