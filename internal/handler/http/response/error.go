package response

import (
	"errors"
	"net/http"

	"github.com/hrpoint/attendance-backend-go/internal/domain/attendance"
	"github.com/hrpoint/attendance-backend-go/internal/domain/employee"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidEmployeeID):
		BadRequest(w, "Employee id is required", nil)
	case errors.Is(err, attendance.ErrNoActiveSession):
		Conflict(w, "No attendance record open for today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrStoreFailure):
		// Store failures are retryable; the envelope says so.
		ServiceUnavailable(w, "Attendance store is unavailable, please retry")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
