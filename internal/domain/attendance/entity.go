package attendance

import (
	"time"
)

// AttendanceRecord is one ledger row per (employee, calendar day). Times of
// day and the running total are HH:MM:SS strings and the date a YYYY-MM-DD
// string, matching the store schema exactly.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       string

	// FirstClockIn holds the start of the current or most recent session.
	// It is overwritten on every clock-in, resumed ones included, so despite
	// the name it is not necessarily the day's first-ever clock-in.
	FirstClockIn string

	// LastClockOut is nil exactly while a session is open.
	LastClockOut *string

	// NumClockIns counts clock-in events for the day, fresh and resumed.
	NumClockIns int

	// TotalHoursWorked accumulates across all completed sessions for the
	// day. It only moves forward; a new day starts a new record at 00:00:00.
	TotalHoursWorked string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionOpen reports whether the employee is currently clocked in on this
// record.
func (r AttendanceRecord) SessionOpen() bool {
	return r.LastClockOut == nil
}
