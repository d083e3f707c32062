// Package importer loads attendance-log pages exported by the previous
// system and replays them as manual entries.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// LegacyRecord is one attendance-log row of the previous system. Its minute
// fields are not trusted; metrics are recomputed on import.
type LegacyRecord struct {
	ID       any     `json:"id"`
	ClockIn  string  `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
	Employee *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"employee"`
}

type Summary struct {
	Imported int
	Skipped  int
}

func (s *Summary) Add(o Summary) {
	s.Imported += o.Imported
	s.Skipped += o.Skipped
}

type Importer struct {
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceService
}

func NewImporter(employees employee.EmployeeRepository, attendance attendance.AttendanceService) *Importer {
	return &Importer{employees: employees, attendance: attendance}
}

// ImportPage imports every row of one page in any supported envelope and
// returns the link of the following page, if any.
func (im *Importer) ImportPage(ctx context.Context, raw []byte) (Summary, *string, error) {
	page, err := pagination.Decode[LegacyRecord](raw)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("failed to decode page: %w", err)
	}

	var sum Summary
	emailToID := make(map[string]string)

	for _, rec := range page.Data {
		if err := ctx.Err(); err != nil {
			return sum, nil, err
		}

		ok, err := im.importRecord(ctx, rec, emailToID)
		if err != nil {
			return sum, nil, err
		}
		if ok {
			sum.Imported++
		} else {
			sum.Skipped++
		}
	}

	return sum, page.Links.Next, nil
}

func (im *Importer) importRecord(ctx context.Context, rec LegacyRecord, emailToID map[string]string) (bool, error) {
	if rec.Employee == nil || validator.IsEmpty(rec.Employee.Email) {
		slog.Warn("Skipping legacy record without employee email", "legacy_id", rec.ID)
		return false, nil
	}
	email := strings.ToLower(strings.TrimSpace(rec.Employee.Email))

	employeeID, cached := emailToID[email]
	if !cached {
		emp, err := im.employees.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				slog.Warn("Skipping legacy record for unknown employee", "legacy_id", rec.ID, "email", email)
				return false, nil
			}
			return false, fmt.Errorf("failed to look up employee %s: %w", email, err)
		}
		employeeID = emp.ID
		emailToID[email] = employeeID
	}

	_, err := im.attendance.ManualEntry(ctx, attendance.ManualEntryRequest{
		EmployeeID: employeeID,
		ClockIn:    rec.ClockIn,
		ClockOut:   rec.ClockOut,
	})
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			slog.Warn("Skipping invalid legacy record", "legacy_id", rec.ID, "error", verrs.Error())
			return false, nil
		}
		return false, fmt.Errorf("failed to import legacy record %v: %w", rec.ID, err)
	}
	return true, nil
}
