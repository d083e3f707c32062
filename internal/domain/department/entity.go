package department

import (
	"fmt"
	"strings"
	"time"
)

type Department struct {
	ID              string
	Name            string
	MaxClockInTime  TimeOfDay
	MaxClockOutTime TimeOfDay
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Policy returns the attendance thresholds configured on the department.
func (d Department) Policy() Policy {
	return Policy{
		MaxClockIn:  d.MaxClockInTime,
		MaxClockOut: d.MaxClockOutTime,
	}
}

// Policy is the pair of thresholds lateness, overtime and early leave are measured against.
type Policy struct {
	MaxClockIn  TimeOfDay
	MaxClockOut TimeOfDay
}

// TimeOfDay is a wall-clock time without a date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// TimeOfDayFromDuration converts an offset since midnight, as stored in a
// postgres time column, into a TimeOfDay.
func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	d = d.Truncate(time.Second) % (24 * time.Hour)
	return TimeOfDay{
		Hour:   int(d / time.Hour),
		Minute: int(d % time.Hour / time.Minute),
		Second: int(d % time.Minute / time.Second),
	}
}

// SinceMidnight is the offset of t from 00:00:00.
func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
}

// On places t on the calendar day of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
