package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	locker         lock.Locker
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	policies       department.PolicyResolver
	loc            *time.Location
	now            func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) { s.now = now }
}

func NewAttendanceService(
	tx database.Transactor,
	locker lock.Locker,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policies department.PolicyResolver,
	loc *time.Location,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		tx:             tx,
		locker:         locker,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policies:       policies,
		loc:            loc,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// transition is one state change computed against a locked employee row.
type transition func(ctx context.Context, emp employee.Employee, policy department.Policy) (attendance.Attendance, error)

// mutate runs fn for one employee under the keyed lock and inside a
// transaction holding the employee row lock. The state check in fn and its
// write commit together or not at all.
func (s *AttendanceServiceImpl) mutate(ctx context.Context, employeeID string, fn transition) (attendance.AttendanceResponse, error) {
	release, err := s.locker.Lock(ctx, "attendance:employee:"+employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	defer release()

	var saved attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}

		policy, err := s.policies.Resolve(ctx, emp.DepartmentID)
		if err != nil {
			return err
		}

		saved, err = fn(ctx, emp, policy)
		if err != nil {
			return err
		}
		saved.Employee = &emp
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(saved, s.loc), nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.mutate(ctx, req.EmployeeID, func(ctx context.Context, emp employee.Employee, policy department.Policy) (attendance.Attendance, error) {
		latest, err := s.attendanceRepo.GetLatestByEmployee(ctx, emp.ID)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to get latest attendance: %w", err)
		}
		if err := attendance.StateOf(latest).CanClockIn(); err != nil {
			return attendance.Attendance{}, err
		}

		id, err := newID()
		if err != nil {
			return attendance.Attendance{}, err
		}

		created, err := s.attendanceRepo.Create(ctx, attendance.Open(id, emp.ID, s.now(), policy, s.loc))
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
		}
		return created, nil
	})
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.mutate(ctx, req.EmployeeID, func(ctx context.Context, emp employee.Employee, policy department.Policy) (attendance.Attendance, error) {
		latest, err := s.attendanceRepo.GetLatestByEmployee(ctx, emp.ID)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to get latest attendance: %w", err)
		}
		if err := attendance.StateOf(latest).CanClockOut(); err != nil {
			return attendance.Attendance{}, err
		}

		updated, err := s.attendanceRepo.Update(ctx, attendance.Close(*latest, s.now(), policy, s.loc))
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
		}
		return updated, nil
	})
}

// ManualEntry implements attendance.AttendanceService. The record whose
// clock_in falls on the same local day is overwritten; otherwise a new one is
// created. Open records of the employee are left as they are.
func (s *AttendanceServiceImpl) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	clockIn, clockOut, err := req.Times(s.loc)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.mutate(ctx, req.EmployeeID, func(ctx context.Context, emp employee.Employee, policy department.Policy) (attendance.Attendance, error) {
		from, to := validator.LocalDayBounds(clockIn.In(s.loc), s.loc)
		existing, err := s.attendanceRepo.GetByEmployeeInRange(ctx, emp.ID, from, to)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to get attendance for day: %w", err)
		}

		if existing != nil {
			rec, err := s.attendanceRepo.Update(ctx, attendance.Manual(*existing, clockIn, clockOut, policy, s.loc))
			if err != nil {
				return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
			}
			slog.Info("Manual attendance entry overwrote record", "employee_id", emp.ID, "attendance_id", rec.ID)
			return rec, nil
		}

		id, err := newID()
		if err != nil {
			return attendance.Attendance{}, err
		}
		rec, err := s.attendanceRepo.Create(ctx, attendance.Manual(attendance.Attendance{ID: id, EmployeeID: emp.ID}, clockIn, clockOut, policy, s.loc))
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
		}
		slog.Info("Manual attendance entry created record", "employee_id", emp.ID, "attendance_id", rec.ID)
		return rec, nil
	})
}

// GetLatest implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetLatest(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	emp, latest, err := s.latest(ctx, employeeID)
	if err != nil || latest == nil {
		return nil, err
	}

	latest.Employee = &emp
	resp := attendance.NewAttendanceResponse(*latest, s.loc)
	return &resp, nil
}

// GetStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID string) (attendance.AttendanceStatusResponse, error) {
	emp, latest, err := s.latest(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	state := attendance.StateOf(latest)
	resp := attendance.AttendanceStatusResponse{
		EmployeeID:  emp.ID,
		State:       state,
		CanClockIn:  state.CanClockIn() == nil,
		CanClockOut: state.CanClockOut() == nil,
	}
	if latest != nil {
		latest.Employee = &emp
		view := attendance.NewAttendanceResponse(*latest, s.loc)
		resp.Latest = &view
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) latest(ctx context.Context, employeeID string) (employee.Employee, *attendance.Attendance, error) {
	if !validator.IsValidUUID(employeeID) {
		return employee.Employee{}, nil, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, nil, err
	}

	latest, err := s.attendanceRepo.GetLatestByEmployee(ctx, emp.ID)
	if err != nil {
		return employee.Employee{}, nil, fmt.Errorf("failed to get latest attendance: %w", err)
	}
	return emp, latest, nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}
