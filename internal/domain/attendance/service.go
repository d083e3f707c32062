package attendance

import (
	"context"

	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens a record for the employee at the current time
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the employee's open record at the current time
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// ManualEntry writes an administrative correction. It skips the open-record
	// check that ClockIn enforces.
	ManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)

	// GetLatest returns nil when the employee has no records
	GetLatest(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	GetStatus(ctx context.Context, employeeID string) (AttendanceStatusResponse, error)

	QueryLog(ctx context.Context, query LogQuery) (pagination.Result[AttendanceResponse], error)
	ExportLog(ctx context.Context, query LogQuery, format export.Format) (LogExport, error)
}
