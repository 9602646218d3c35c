package attendance

import (
	"github.com/hrpoint/attendance-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	FirstClockIn     string  `json:"first_clock_in"`
	LastClockOut     *string `json:"last_clock_out"`
	NumClockIns      int     `json:"num_clock_ins"`
	TotalHoursWorked string  `json:"total_hours_worked"`
	ClockedIn        bool    `json:"clocked_in"`
}

type HistoryFilter struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != "" {
		if _, ok := validator.IsValidDate(f.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be a YYYY-MM-DD date",
			})
		}
	}
	if f.To != "" {
		if _, ok := validator.IsValidDate(f.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be a YYYY-MM-DD date",
			})
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 31
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Records    []AttendanceResponse `json:"records"`
}
