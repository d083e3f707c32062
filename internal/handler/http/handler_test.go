package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	attendance.AttendanceService

	clockIn   func(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	clockOut  func(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	manual    func(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error)
	latest    func(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error)
	status    func(ctx context.Context, employeeID string) (attendance.AttendanceStatusResponse, error)
	queryLog  func(ctx context.Context, q attendance.LogQuery) (pagination.Result[attendance.AttendanceResponse], error)
	exportLog func(ctx context.Context, q attendance.LogQuery, f export.Format) (attendance.LogExport, error)
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockIn(ctx, req)
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return f.clockOut(ctx, req)
}

func (f *fakeAttendanceService) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	return f.manual(ctx, req)
}

func (f *fakeAttendanceService) GetLatest(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	return f.latest(ctx, employeeID)
}

func (f *fakeAttendanceService) GetStatus(ctx context.Context, employeeID string) (attendance.AttendanceStatusResponse, error) {
	return f.status(ctx, employeeID)
}

func (f *fakeAttendanceService) QueryLog(ctx context.Context, q attendance.LogQuery) (pagination.Result[attendance.AttendanceResponse], error) {
	return f.queryLog(ctx, q)
}

func (f *fakeAttendanceService) ExportLog(ctx context.Context, q attendance.LogQuery, format export.Format) (attendance.LogExport, error) {
	return f.exportLog(ctx, q, format)
}

type fakeDepartmentService struct {
	department.DepartmentService

	del     func(ctx context.Context, id string) error
	listAll func(ctx context.Context) ([]department.DepartmentResponse, error)
	list    func(ctx context.Context, filter department.DepartmentFilter) (pagination.Result[department.DepartmentResponse], error)
	update  func(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
}

func (f *fakeDepartmentService) Delete(ctx context.Context, id string) error {
	return f.del(ctx, id)
}

func (f *fakeDepartmentService) ListAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	return f.listAll(ctx)
}

func (f *fakeDepartmentService) List(ctx context.Context, filter department.DepartmentFilter) (pagination.Result[department.DepartmentResponse], error) {
	return f.list(ctx, filter)
}

func (f *fakeDepartmentService) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.update(ctx, req)
}

type fakeEmployeeService struct {
	employee.EmployeeService

	create  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	listAll func(ctx context.Context, departmentID *string) ([]employee.EmployeeResponse, error)
	list    func(ctx context.Context, filter employee.EmployeeFilter) (pagination.Result[employee.EmployeeResponse], error)
}

func (f *fakeEmployeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.create(ctx, req)
}

func (f *fakeEmployeeService) ListAllEmployees(ctx context.Context, departmentID *string) ([]employee.EmployeeResponse, error) {
	return f.listAll(ctx, departmentID)
}

func (f *fakeEmployeeService) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (pagination.Result[employee.EmployeeResponse], error) {
	return f.list(ctx, filter)
}

type testServer struct {
	attendance  *fakeAttendanceService
	departments *fakeDepartmentService
	employees   *fakeEmployeeService
	handler     http.Handler
}

func newTestServer() *testServer {
	s := &testServer{
		attendance:  &fakeAttendanceService{},
		departments: &fakeDepartmentService{},
		employees:   &fakeEmployeeService{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = NewRouter(
		logger,
		RouterOptions{FrontendURL: "http://localhost:3000", LogLevel: slog.LevelError},
		NewAttendanceHandler(s.attendance),
		NewDepartmentHandler(s.departments),
		NewEmployeeHandler(s.employees),
	)
	return s
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
