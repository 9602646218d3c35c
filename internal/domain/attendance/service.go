package attendance

import (
	"context"
)

// AttendanceService defines the ledger operations.
type AttendanceService interface {
	// ClockIn records a clock-in for today, creating the day's record on the
	// first one. On an existing record it increments the clock-in count and
	// restarts the session without touching last_clock_out; see ResumeClockIn
	// for the variant that reopens the session marker.
	ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// ResumeClockIn reopens today's record after an earlier clock-out,
	// clearing last_clock_out and preserving the accumulated total. Falls
	// back to ClockIn when no record exists yet.
	ResumeClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// ClockOut closes the current session and adds its duration to the
	// day's total.
	ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// GetTodayAttendance returns nil (not an error) when the employee has no
	// record for today.
	GetTodayAttendance(ctx context.Context, employeeID string) (*AttendanceResponse, error)

	// FinalizeDay force-closes today's open session with the end-of-day
	// sentinel. No-op when the employee already clocked out; nil when no
	// record exists.
	FinalizeDay(ctx context.Context, employeeID string) (*AttendanceResponse, error)

	// ResetForNewDay finalizes every open session across all employees.
	// Best-effort: individual failures are logged and skipped.
	ResetForNewDay(ctx context.Context) error

	// GetMyAttendance lists an employee's records with date-range filtering
	// and pagination.
	GetMyAttendance(ctx context.Context, employeeID string, filter HistoryFilter) (ListAttendanceResponse, error)
}
