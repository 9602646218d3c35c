package attendance

import (
	"context"
)

// AttendanceRepository is the record store consumed by the ledger. Dates and
// times cross this boundary as YYYY-MM-DD / HH:MM:SS strings.
type AttendanceRepository interface {
	// Create inserts a new record and returns it with its assigned id.
	Create(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// GetByEmployeeAndDate returns (nil, nil) when no record exists for the
	// pair; that is the expected state before the first clock-in of a day.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*AttendanceRecord, error)

	// Update persists all mutable fields of rec, matched by id.
	Update(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// ListOpenSessions returns every record with no clock-out yet, across all
	// employees and dates. Used by the day-boundary sweeps.
	ListOpenSessions(ctx context.Context) ([]AttendanceRecord, error)

	// ListByEmployee returns an employee's records plus the unpaginated count.
	ListByEmployee(ctx context.Context, employeeID string, filter HistoryFilter) ([]AttendanceRecord, int64, error)
}
