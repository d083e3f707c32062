package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateOf(t *testing.T) {
	loc := jakarta(t)
	out := at(loc, 17, 0, 0)

	assert.Equal(t, StateNone, StateOf(nil))
	assert.Equal(t, StateOpen, StateOf(&Attendance{ClockIn: at(loc, 9, 0, 0)}))
	assert.Equal(t, StateClosed, StateOf(&Attendance{ClockIn: at(loc, 9, 0, 0), ClockOut: &out}))
}

func TestState_Guards(t *testing.T) {
	assert.NoError(t, StateNone.CanClockIn())
	assert.ErrorIs(t, StateOpen.CanClockIn(), ErrAlreadyClockedIn)
	assert.NoError(t, StateClosed.CanClockIn())

	assert.ErrorIs(t, StateNone.CanClockOut(), ErrNotClockedIn)
	assert.NoError(t, StateOpen.CanClockOut())
	assert.ErrorIs(t, StateClosed.CanClockOut(), ErrAlreadyClockedOut)
}

func TestOpenThenClose(t *testing.T) {
	loc := jakarta(t)

	rec := Open("att-1", "emp-1", at(loc, 9, 15, 0), officeHours(), loc)
	assert.Equal(t, "att-1", rec.ID)
	assert.Equal(t, "emp-1", rec.EmployeeID)
	assert.True(t, rec.IsOpen())
	assert.Equal(t, StatusLate, rec.Status)
	assert.Equal(t, 15, rec.LatenessMinutes)
	assert.Equal(t, StateOpen, StateOf(&rec))

	closed := Close(rec, at(loc, 17, 20, 0), officeHours(), loc)
	assert.False(t, closed.IsOpen())
	assert.Equal(t, 15, closed.LatenessMinutes)
	assert.Equal(t, 20, closed.OvertimeMinutes)
	assert.Zero(t, closed.EarlyLeaveMinutes)
	assert.Equal(t, StateClosed, StateOf(&closed))

	// the open value is untouched
	assert.True(t, rec.IsOpen())
}

func TestManual_OverwritesTimestampsAndMetrics(t *testing.T) {
	loc := jakarta(t)
	existing := Open("att-1", "emp-1", at(loc, 9, 30, 0), officeHours(), loc)
	out := at(loc, 16, 40, 0)

	rec := Manual(existing, at(loc, 8, 45, 0), &out, officeHours(), loc)

	assert.Equal(t, "att-1", rec.ID)
	assert.Equal(t, StatusOnTime, rec.Status)
	assert.Zero(t, rec.LatenessMinutes)
	assert.Equal(t, 20, rec.EarlyLeaveMinutes)
	assert.Equal(t, StateClosed, StateOf(&rec))
}
