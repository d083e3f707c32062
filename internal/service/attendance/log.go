package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
)

// QueryLog implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) QueryLog(ctx context.Context, query attendance.LogQuery) (pagination.Result[attendance.AttendanceResponse], error) {
	if err := query.Validate(); err != nil {
		return pagination.Result[attendance.AttendanceResponse]{}, err
	}

	views, total, err := s.views(ctx, query.Criteria(s.loc, pagination.DefaultPerPage))
	if err != nil {
		return pagination.Result[attendance.AttendanceResponse]{}, err
	}

	return pagination.Result[attendance.AttendanceResponse]{
		Items:   views,
		Total:   total,
		Page:    query.Page,
		PerPage: pagination.DefaultPerPage,
	}, nil
}

// ExportLog implements attendance.AttendanceService. It covers every record
// matching the filters, not just one page.
func (s *AttendanceServiceImpl) ExportLog(ctx context.Context, query attendance.LogQuery, format export.Format) (attendance.LogExport, error) {
	if err := query.Validate(); err != nil {
		return attendance.LogExport{}, err
	}

	views, _, err := s.views(ctx, query.Criteria(s.loc, 0))
	if err != nil {
		return attendance.LogExport{}, err
	}

	rows := make([]attendance.ExportRow, 0, len(views))
	for _, v := range views {
		rows = append(rows, attendance.ToExportRow(v))
	}
	return attendance.NewLogExport(rows, query.Date, format), nil
}

// views is the single place records become client values; both the log page
// and the export read from it.
func (s *AttendanceServiceImpl) views(ctx context.Context, criteria attendance.LogCriteria) ([]attendance.AttendanceResponse, int64, error) {
	records, total, err := s.attendanceRepo.List(ctx, criteria)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	views := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		views = append(views, attendance.NewAttendanceResponse(r, s.loc))
	}
	return views, total, nil
}
