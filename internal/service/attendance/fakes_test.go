package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
)

// store backs every fake repository so joins behave like the real ones.
type store struct {
	mu          sync.Mutex
	departments map[string]department.Department
	employees   map[string]employee.Employee
	records     []attendance.Attendance
	lookups     int
}

func newStore() *store {
	return &store{
		departments: make(map[string]department.Department),
		employees:   make(map[string]employee.Employee),
	}
}

func (s *store) joined(e employee.Employee) employee.Employee {
	if d, ok := s.departments[e.DepartmentID]; ok {
		e.Department = &d
	}
	return e
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePolicies struct{ s *store }

func (p fakePolicies) Resolve(_ context.Context, id string) (department.Policy, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	d, ok := p.s.departments[id]
	if !ok {
		return department.Policy{}, department.ErrDepartmentNotFound
	}
	return d.Policy(), nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	s *store
}

func (r fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lookups++
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.s.joined(e), nil
}

func (r fakeEmployeeRepo) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

type fakeAttendanceRepo struct {
	s         *store
	createErr error
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if r.createErr != nil {
		return attendance.Attendance{}, r.createErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.Employee = nil
	a.CreatedAt = a.ClockIn
	a.UpdatedAt = a.ClockIn
	r.s.records = append(r.s.records, a)
	return a, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.records {
		if r.s.records[i].ID == a.ID {
			a.Employee = nil
			r.s.records[i] = a
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.records {
		if a.ID == id {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) sortedLocked(keep func(attendance.Attendance) bool) []attendance.Attendance {
	var out []attendance.Attendance
	for _, a := range r.s.records {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ClockIn.Equal(out[j].ClockIn) {
			return out[i].ClockIn.After(out[j].ClockIn)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeAttendanceRepo) GetLatestByEmployee(_ context.Context, employeeID string) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.sortedLocked(func(a attendance.Attendance) bool { return a.EmployeeID == employeeID })
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *fakeAttendanceRepo) GetByEmployeeInRange(_ context.Context, employeeID string, from, to time.Time) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.sortedLocked(func(a attendance.Attendance) bool {
		return a.EmployeeID == employeeID && !a.ClockIn.Before(from) && a.ClockIn.Before(to)
	})
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, c attendance.LogCriteria) ([]attendance.Attendance, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.sortedLocked(func(a attendance.Attendance) bool {
		if c.From != nil && a.ClockIn.Before(*c.From) {
			return false
		}
		if c.To != nil && !a.ClockIn.Before(*c.To) {
			return false
		}
		if c.DepartmentID != nil && r.s.employees[a.EmployeeID].DepartmentID != *c.DepartmentID {
			return false
		}
		return true
	})

	total := int64(len(rows))
	if c.Limit > 0 {
		start := min(c.Offset, len(rows))
		end := min(start+c.Limit, len(rows))
		rows = rows[start:end]
	}
	for i := range rows {
		emp := r.s.joined(r.s.employees[rows[i].EmployeeID])
		rows[i].Employee = &emp
	}
	return rows, total, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
