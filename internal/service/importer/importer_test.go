package importer

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	employee.EmployeeRepository
	byEmail map[string]employee.Employee
	lookups int
}

func (f *fakeEmployees) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	f.lookups++
	e, ok := f.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type recordingAttendance struct {
	attendance.AttendanceService
	entries []attendance.ManualEntryRequest
}

func (r *recordingAttendance) ManualEntry(_ context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	r.entries = append(r.entries, req)
	return attendance.AttendanceResponse{ID: "new", EmployeeID: req.EmployeeID}, nil
}

func newTestImporter() (*Importer, *fakeEmployees, *recordingAttendance) {
	emps := &fakeEmployees{byEmail: map[string]employee.Employee{
		"budi@example.com": {ID: "emp-1", Email: "budi@example.com"},
	}}
	rec := &recordingAttendance{}
	return NewImporter(emps, rec), emps, rec
}

const envelopePage = `{
	"data": [
		{"id": 1, "clock_in": "2024-05-01 09:15:00", "clock_out": "2024-05-01 17:20:00", "lateness_minutes": 900,
		 "employee": {"name": "Budi", "email": "Budi@Example.com"}},
		{"id": 2, "clock_in": "2024-05-02 08:50:00", "clock_out": null,
		 "employee": {"name": "Budi", "email": "budi@example.com"}},
		{"id": 3, "clock_in": "2024-05-02 08:50:00", "employee": {"name": "Ghost", "email": "ghost@example.com"}},
		{"id": 4, "clock_in": "2024-05-02 08:50:00"},
		{"id": 5, "clock_in": "2024-05-03 09:00:00", "clock_out": "2024-05-03 08:00:00",
		 "employee": {"name": "Budi", "email": "budi@example.com"}}
	],
	"links": {"first": "http://old/api/attendance-log?page=1", "last": "http://old/api/attendance-log?page=2", "prev": null, "next": "http://old/api/attendance-log?page=2"},
	"meta": {"current_page": 1, "from": 1, "last_page": 2, "path": "http://old/api/attendance-log", "per_page": 5, "to": 5, "total": 6}
}`

func TestImporter_ImportPage_Envelope(t *testing.T) {
	im, emps, rec := newTestImporter()

	sum, next, err := im.ImportPage(context.Background(), []byte(envelopePage))

	require.NoError(t, err)
	assert.Equal(t, Summary{Imported: 2, Skipped: 3}, sum)
	require.NotNil(t, next)
	assert.Equal(t, "http://old/api/attendance-log?page=2", *next)

	require.Len(t, rec.entries, 2)
	assert.Equal(t, "emp-1", rec.entries[0].EmployeeID)
	assert.Equal(t, "2024-05-01 09:15:00", rec.entries[0].ClockIn)
	assert.Nil(t, rec.entries[1].ClockOut)

	// one lookup per distinct email
	assert.Equal(t, 2, emps.lookups)
}

func TestImporter_ImportPage_FlatPaginatorLastPage(t *testing.T) {
	im, _, rec := newTestImporter()
	raw := `{
		"current_page": 2,
		"data": [{"id": 6, "clock_in": "2024-05-04 09:00:00", "clock_out": "2024-05-04 17:00:00", "employee": {"email": "budi@example.com"}}],
		"last_page": 2,
		"next_page_url": null,
		"per_page": 5,
		"total": 6
	}`

	sum, next, err := im.ImportPage(context.Background(), []byte(raw))

	require.NoError(t, err)
	assert.Equal(t, Summary{Imported: 1}, sum)
	assert.Nil(t, next)
	assert.Len(t, rec.entries, 1)
}

func TestImporter_ImportPage_UnknownShape(t *testing.T) {
	im, _, _ := newTestImporter()

	_, _, err := im.ImportPage(context.Background(), []byte(`{"rows": []}`))
	assert.ErrorIs(t, err, pagination.ErrUnknownShape)
}

func TestSummary_Add(t *testing.T) {
	s := Summary{Imported: 1, Skipped: 2}
	s.Add(Summary{Imported: 3, Skipped: 4})
	assert.Equal(t, Summary{Imported: 4, Skipped: 6}, s)
}
