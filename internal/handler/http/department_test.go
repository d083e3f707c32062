package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentHandler_Delete_InUse(t *testing.T) {
	s := newTestServer()
	s.departments.del = func(ctx context.Context, id string) error {
		assert.Equal(t, "dep-1", id)
		return department.ErrDepartmentInUse
	}

	rec := s.do(t, http.MethodDelete, "/api/v1/departments/dep-1", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DEPARTMENT_IN_USE", decodeEnvelope(t, rec).Error.Code)
}

func TestDepartmentHandler_List_All(t *testing.T) {
	s := newTestServer()
	s.departments.listAll = func(ctx context.Context) ([]department.DepartmentResponse, error) {
		return []department.DepartmentResponse{{ID: "dep-1", Name: "Engineering", MaxClockInTime: "09:00:00", MaxClockOutTime: "17:00:00"}}, nil
	}

	rec := s.do(t, http.MethodGet, "/api/v1/departments?all=true", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []department.DepartmentResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "09:00:00", items[0].MaxClockInTime)
}

func TestDepartmentHandler_List_Paginated(t *testing.T) {
	s := newTestServer()
	s.departments.list = func(ctx context.Context, filter department.DepartmentFilter) (pagination.Result[department.DepartmentResponse], error) {
		assert.Equal(t, 3, filter.Page)
		return pagination.Result[department.DepartmentResponse]{Total: 31, Page: 3, PerPage: 15}, nil
	}

	rec := s.do(t, http.MethodGet, "/api/v1/departments?page=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var page pagination.Page[department.DepartmentResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Meta.LastPage)
	assert.Nil(t, page.Links.Next)
}

func TestDepartmentHandler_Update_UsesPathID(t *testing.T) {
	s := newTestServer()
	s.departments.update = func(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
		assert.Equal(t, "dep-2", req.ID)
		require.NotNil(t, req.MaxClockInTime)
		assert.Equal(t, "08:30", *req.MaxClockInTime)
		return department.DepartmentResponse{ID: req.ID, MaxClockInTime: "08:30:00"}, nil
	}

	rec := s.do(t, http.MethodPut, "/api/v1/departments/dep-2", map[string]string{"id": "ignored", "max_clock_in_time": "08:30"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEmployeeHandler_Create_EmailExists(t *testing.T) {
	s := newTestServer()
	s.employees.create = func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	rec := s.do(t, http.MethodPost, "/api/v1/employees", map[string]string{
		"name": "Budi", "email": "budi@example.com", "position": "Engineer", "department_id": "dep-1",
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_EXISTS", decodeEnvelope(t, rec).Error.Code)
}

func TestEmployeeHandler_List_AllForDropdown(t *testing.T) {
	s := newTestServer()
	s.employees.listAll = func(ctx context.Context, departmentID *string) ([]employee.EmployeeResponse, error) {
		require.NotNil(t, departmentID)
		assert.Equal(t, "dep-1", *departmentID)
		return []employee.EmployeeResponse{{ID: "emp-1", Name: "Budi"}}, nil
	}

	rec := s.do(t, http.MethodGet, "/api/v1/employees?all=true&department_id=dep-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestEmployeeHandler_List_Paginated(t *testing.T) {
	s := newTestServer()
	s.employees.list = func(ctx context.Context, filter employee.EmployeeFilter) (pagination.Result[employee.EmployeeResponse], error) {
		assert.Nil(t, filter.DepartmentID)
		assert.Equal(t, 1, filter.Page)
		return pagination.Result[employee.EmployeeResponse]{
			Items:   []employee.EmployeeResponse{{ID: "emp-1"}},
			Total:   1,
			Page:    1,
			PerPage: 15,
		}, nil
	}

	rec := s.do(t, http.MethodGet, "/api/v1/employees?page=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var page pagination.Page[employee.EmployeeResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.EqualValues(t, 1, page.Meta.Total)
}
