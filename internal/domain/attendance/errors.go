package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidEmployeeID = errors.New("employee id is required")
	ErrNoActiveSession   = errors.New("no attendance record open for today")
	ErrRecordNotFound    = errors.New("attendance record not found")

	// ErrStoreFailure wraps any record store read/write failure. Callers see
	// it as retryable.
	ErrStoreFailure = errors.New("attendance store failure")
)
