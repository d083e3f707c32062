package attendance

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
)

// Metrics are the values derived from a record's timestamps and its
// department policy. Every field is in whole minutes.
type Metrics struct {
	Status            Status
	LatenessMinutes   int
	OvertimeMinutes   int
	EarlyLeaveMinutes int
}

// Compute derives metrics for a partial (clockOut nil) or complete record.
// Both thresholds are placed on the calendar date of clockIn in loc, and
// partial minutes are dropped.
func Compute(clockIn time.Time, clockOut *time.Time, policy department.Policy, loc *time.Location) Metrics {
	day := clockIn.In(loc)

	var m Metrics
	m.LatenessMinutes = wholeMinutes(clockIn.Sub(policy.MaxClockIn.On(day)))

	if clockOut != nil {
		maxOut := policy.MaxClockOut.On(day)
		m.OvertimeMinutes = wholeMinutes(clockOut.Sub(maxOut))
		m.EarlyLeaveMinutes = wholeMinutes(maxOut.Sub(*clockOut))
	}

	m.Status = StatusOnTime
	if m.LatenessMinutes > 0 {
		m.Status = StatusLate
	}
	return m
}

func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
