package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

const employeeID = "01908f1c-5a2e-7b3d-8c4f-000000000001"

func TestManualEntryRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    ManualEntryRequest
		fields []string
	}{
		{
			name: "valid with clock out",
			req:  ManualEntryRequest{EmployeeID: employeeID, ClockIn: "2024-05-01 09:00:00", ClockOut: strPtr("2024-05-01 17:00:00")},
		},
		{
			name: "valid without clock out",
			req:  ManualEntryRequest{EmployeeID: employeeID, ClockIn: "2024-05-01 09:00:00"},
		},
		{
			name:   "missing fields",
			req:    ManualEntryRequest{},
			fields: []string{"employee_id", "clock_in"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			got := verrs.ToMap()
			assert.Len(t, got, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, got, f)
			}
		})
	}
}

func TestManualEntryRequest_ValidateBlankClockOut(t *testing.T) {
	req := ManualEntryRequest{EmployeeID: employeeID, ClockIn: "2024-05-01 09:00:00", ClockOut: strPtr(" ")}

	require.NoError(t, req.Validate())
	assert.Nil(t, req.ClockOut)
}

func TestManualEntryRequest_ValidateMalformedEmployeeID(t *testing.T) {
	req := ManualEntryRequest{EmployeeID: "abc", ClockIn: "2024-05-01 09:00:00"}

	assert.ErrorIs(t, req.Validate(), employee.ErrEmployeeNotFound)
}

func TestClockRequests_MalformedEmployeeID(t *testing.T) {
	in := ClockInRequest{EmployeeID: "abc"}
	assert.ErrorIs(t, in.Validate(), employee.ErrEmployeeNotFound)

	out := ClockOutRequest{EmployeeID: "1; DROP TABLE employees"}
	assert.ErrorIs(t, out.Validate(), employee.ErrEmployeeNotFound)

	ok := ClockInRequest{EmployeeID: employeeID}
	assert.NoError(t, ok.Validate())
}

func TestManualEntryRequest_TimesRejects(t *testing.T) {
	tests := []struct {
		name   string
		req    ManualEntryRequest
		fields []string
	}{
		{
			name:   "bad format",
			req:    ManualEntryRequest{EmployeeID: employeeID, ClockIn: "2024-05-01T09:00:00Z", ClockOut: strPtr("17:00")},
			fields: []string{"clock_in", "clock_out"},
		},
		{
			name:   "clock out before clock in",
			req:    ManualEntryRequest{EmployeeID: employeeID, ClockIn: "2024-05-01 09:00:00", ClockOut: strPtr("2024-05-01 08:59:59")},
			fields: []string{"clock_out"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.req.Times(time.UTC)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			got := verrs.ToMap()
			assert.Len(t, got, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, got, f)
			}
		})
	}
}

func TestManualEntryRequest_TimesInLocation(t *testing.T) {
	loc := jakarta(t)
	req := ManualEntryRequest{EmployeeID: employeeID, ClockIn: "2024-05-01 09:15:00", ClockOut: strPtr("2024-05-01 17:20:00")}

	in, out, err := req.Times(loc)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, in.Equal(time.Date(2024, time.May, 1, 2, 15, 0, 0, time.UTC)))
	assert.True(t, out.Equal(time.Date(2024, time.May, 1, 10, 20, 0, 0, time.UTC)))
}

func TestNewAttendanceResponse_NaiveLocalTimestamps(t *testing.T) {
	loc := jakarta(t)
	rec := sampleRecord(t, false)
	rec.ClockIn = rec.ClockIn.UTC()

	view := NewAttendanceResponse(rec, loc)

	assert.Equal(t, "2024-05-01 10:01:00", view.ClockIn)
	assert.Nil(t, view.ClockOut)
	require.NotNil(t, view.Employee)
	require.NotNil(t, view.Employee.Department)
	assert.Equal(t, "Engineering", view.Employee.Department.Name)
}

func TestLogQuery_ValidateDefaults(t *testing.T) {
	q := LogQuery{Date: strPtr(""), DepartmentID: strPtr(" ")}
	require.NoError(t, q.Validate())

	assert.Equal(t, 1, q.Page)
	assert.Nil(t, q.Date)
	assert.Nil(t, q.DepartmentID)

	q = LogQuery{Date: strPtr("01-05-2024"), Page: -1}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, q.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
	assert.Contains(t, verrs.ToMap(), "page")
}

func TestLogQuery_ValidateRejectsMalformedDepartment(t *testing.T) {
	q := LogQuery{DepartmentID: strPtr("garbage")}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, q.Validate(), &verrs)
	assert.Equal(t, map[string]string{"department_id": "department_id must be a valid UUID"}, verrs.ToMap())

	q = LogQuery{DepartmentID: strPtr("01908f1c-5a2e-7b3d-9c4f-000000000001")}
	assert.NoError(t, q.Validate())
}

func TestLogQuery_CriteriaUsesLocalMidnight(t *testing.T) {
	loc := jakarta(t)
	q := LogQuery{Date: strPtr("2024-05-01"), DepartmentID: strPtr("dep-1"), Page: 3}

	c := q.Criteria(loc, 15)

	require.NotNil(t, c.From)
	require.NotNil(t, c.To)
	assert.True(t, c.From.Equal(time.Date(2024, time.April, 30, 17, 0, 0, 0, time.UTC)))
	assert.True(t, c.To.Equal(time.Date(2024, time.May, 1, 17, 0, 0, 0, time.UTC)))
	assert.Equal(t, "dep-1", *c.DepartmentID)
	assert.Equal(t, 15, c.Limit)
	assert.Equal(t, 30, c.Offset)

	all := q.Criteria(loc, 0)
	assert.Zero(t, all.Limit)
	assert.Zero(t, all.Offset)
}
