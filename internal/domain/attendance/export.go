package attendance

import (
	"strings"

	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/export"
)

// ExportHeader is the fixed column order of the attendance export.
var ExportHeader = []string{
	"Employee Name",
	"Department",
	"Date",
	"Clock In",
	"Clock Out",
	"Status",
	"Lateness (minutes)",
	"Overtime (minutes)",
	"Early Leave (minutes)",
}

type ExportRow struct {
	EmployeeName      string
	Department        string
	Date              string
	ClockIn           string
	ClockOut          string
	Status            string
	LatenessMinutes   int
	OvertimeMinutes   int
	EarlyLeaveMinutes int
}

// ToExportRow flattens a view. Minute values are copied from the view as is,
// so a download always agrees with what the log page showed.
func ToExportRow(v AttendanceResponse) ExportRow {
	row := ExportRow{
		Status:            string(v.Status),
		LatenessMinutes:   v.LatenessMinutes,
		OvertimeMinutes:   v.OvertimeMinutes,
		EarlyLeaveMinutes: v.EarlyLeaveMinutes,
	}
	row.Date, row.ClockIn = splitDateTime(v.ClockIn)
	if v.ClockOut != nil {
		_, row.ClockOut = splitDateTime(*v.ClockOut)
	}
	if v.Employee != nil {
		row.EmployeeName = v.Employee.Name
		if v.Employee.Department != nil {
			row.Department = v.Employee.Department.Name
		}
	}
	return row
}

func (r ExportRow) Values() []any {
	return []any{
		r.EmployeeName,
		r.Department,
		r.Date,
		r.ClockIn,
		r.ClockOut,
		r.Status,
		r.LatenessMinutes,
		r.OvertimeMinutes,
		r.EarlyLeaveMinutes,
	}
}

// LogExport is a rendered-ready attendance report.
type LogExport struct {
	Filename string
	Table    export.Table
}

// NewLogExport builds the table for rows. date names the file; nil means the
// export is not limited to one day.
func NewLogExport(rows []ExportRow, date *string, format export.Format) LogExport {
	suffix := "all"
	if date != nil {
		suffix = *date
	}

	table := export.Table{
		Sheet:  "Attendance",
		Header: ExportHeader,
		Rows:   make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, r.Values())
	}

	return LogExport{
		Filename: "attendance-log-" + suffix + "." + format.Extension(),
		Table:    table,
	}
}

func splitDateTime(s string) (string, string) {
	date, clock, found := strings.Cut(s, " ")
	if !found {
		return s, ""
	}
	return date, clock
}
