package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hrpoint/attendance-backend-go/internal/domain/attendance"
	"github.com/hrpoint/attendance-backend-go/internal/domain/employee"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/clock"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/metrics"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/timefmt"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clk            clock.Clock
	storeTimeout   time.Duration
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	storeTimeout time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clk:            clk,
		storeTimeout:   storeTimeout,
	}
}

// withStoreTimeout bounds an operation's store calls so a hung store call
// surfaces as a retryable failure instead of blocking the caller forever.
func (s *AttendanceServiceImpl) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

func storeFailure(op string, err error) error {
	metrics.StoreFailures.Inc()
	return fmt.Errorf("%w: %s: %v", attendance.ErrStoreFailure, op, err)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	if validator.IsEmpty(employeeID) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidEmployeeID
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, storeFailure("look up employee", err)
	}

	now := s.clk.Now()
	today := now.Format(timefmt.DateLayout)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, storeFailure("get today attendance", err)
	}

	if rec != nil {
		// Additional clock-in on an existing record: restart the session and
		// bump the count. Unlike ResumeClockIn this leaves last_clock_out
		// untouched, so a record clocked out earlier today still looks
		// closed. The two entry points are kept separate on purpose; callers
		// that mean "clock back in" use ResumeClockIn.
		rec.FirstClockIn = now.Format(timefmt.TimeLayout)
		rec.NumClockIns++

		updated, err := s.attendanceRepo.Update(ctx, *rec)
		if err != nil {
			return attendance.AttendanceResponse{}, storeFailure("update attendance record", err)
		}
		metrics.ClockEvents.WithLabelValues("clock_in").Inc()
		return toResponse(updated), nil
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.AttendanceRecord{
		EmployeeID:       employeeID,
		Date:             today,
		FirstClockIn:     now.Format(timefmt.TimeLayout),
		NumClockIns:      1,
		TotalHoursWorked: timefmt.Zero,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, storeFailure("create attendance record", err)
	}
	metrics.ClockEvents.WithLabelValues("clock_in").Inc()
	return toResponse(created), nil
}

// ResumeClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ResumeClockIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	if validator.IsEmpty(employeeID) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidEmployeeID
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	now := s.clk.Now()
	today := now.Format(timefmt.DateLayout)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, storeFailure("get today attendance", err)
	}

	if rec == nil {
		return s.ClockIn(ctx, employeeID)
	}

	// Reopen the session: new start time, one more clock-in, clock-out marker
	// cleared. The accumulated total carries forward untouched until the next
	// clock-out.
	rec.FirstClockIn = now.Format(timefmt.TimeLayout)
	rec.NumClockIns++
	rec.LastClockOut = nil

	updated, err := s.attendanceRepo.Update(ctx, *rec)
	if err != nil {
		return attendance.AttendanceResponse{}, storeFailure("update attendance record", err)
	}
	metrics.ClockEvents.WithLabelValues("resume").Inc()
	return toResponse(updated), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	if validator.IsEmpty(employeeID) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidEmployeeID
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	now := s.clk.Now()
	today := now.Format(timefmt.DateLayout)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, storeFailure("get today attendance", err)
	}
	if rec == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoActiveSession
	}

	nowStr := now.Format(timefmt.TimeLayout)
	session, err := s.sessionDuration(employeeID, rec.FirstClockIn, nowStr)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	newTotal := session
	if rec.TotalHoursWorked != "" {
		newTotal, err = timefmt.AddTimes(rec.TotalHoursWorked, session)
		if err != nil {
			return attendance.AttendanceResponse{}, storeFailure("accumulate total hours", err)
		}
	}

	// first_clock_in stays put as the start of the just-closed session. A
	// repeated clock-out with no resume in between re-adds the same session;
	// the transport-level in-flight guard is what keeps double presses out.
	rec.LastClockOut = &nowStr
	rec.TotalHoursWorked = newTotal

	updated, err := s.attendanceRepo.Update(ctx, *rec)
	if err != nil {
		return attendance.AttendanceResponse{}, storeFailure("update attendance record", err)
	}
	metrics.ClockEvents.WithLabelValues("clock_out").Inc()
	return toResponse(updated), nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	if validator.IsEmpty(employeeID) {
		return nil, attendance.ErrInvalidEmployeeID
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	today := s.clk.Now().Format(timefmt.DateLayout)
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, storeFailure("get today attendance", err)
	}
	if rec == nil {
		return nil, nil
	}

	resp := toResponse(*rec)
	return &resp, nil
}

// FinalizeDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FinalizeDay(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	if validator.IsEmpty(employeeID) {
		return nil, attendance.ErrInvalidEmployeeID
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	today := s.clk.Now().Format(timefmt.DateLayout)
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, storeFailure("get today attendance", err)
	}
	if rec == nil {
		return nil, nil
	}
	if !rec.SessionOpen() {
		resp := toResponse(*rec)
		return &resp, nil
	}

	updated, err := s.finalizeRecord(ctx, *rec)
	if err != nil {
		return nil, err
	}
	resp := toResponse(updated)
	return &resp, nil
}

// ResetForNewDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ResetForNewDay(ctx context.Context) error {
	listCtx, cancel := s.withStoreTimeout(ctx)
	open, err := s.attendanceRepo.ListOpenSessions(listCtx)
	cancel()
	if err != nil {
		return storeFailure("list open sessions", err)
	}

	closed := 0
	for _, rec := range open {
		recCtx, cancel := s.withStoreTimeout(ctx)
		_, err := s.finalizeRecord(recCtx, rec)
		cancel()
		if err != nil {
			slog.Error("Failed to finalize open session",
				"employee_id", rec.EmployeeID,
				"date", rec.Date,
				"error", err)
			continue
		}
		closed++
	}

	slog.Info("Day rollover sweep completed", "open_sessions", len(open), "closed", closed)
	return nil
}

// finalizeRecord force-closes one open session: the final partial session is
// added to the total and last_clock_out is set to the 23:59:59 sentinel. For
// a record left over from a previous day the session is measured up to the
// sentinel itself, since its start time belongs to that day's clock.
func (s *AttendanceServiceImpl) finalizeRecord(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	now := s.clk.Now()
	end := now.Format(timefmt.TimeLayout)
	if rec.Date != now.Format(timefmt.DateLayout) {
		end = timefmt.EndOfDay
	}

	session, err := s.sessionDuration(rec.EmployeeID, rec.FirstClockIn, end)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	newTotal := session
	if rec.TotalHoursWorked != "" {
		newTotal, err = timefmt.AddTimes(rec.TotalHoursWorked, session)
		if err != nil {
			return attendance.AttendanceRecord{}, storeFailure("accumulate total hours", err)
		}
	}

	sentinel := timefmt.EndOfDay
	rec.LastClockOut = &sentinel
	rec.TotalHoursWorked = newTotal

	updated, err := s.attendanceRepo.Update(ctx, rec)
	if err != nil {
		return attendance.AttendanceRecord{}, storeFailure("update attendance record", err)
	}
	metrics.FinalizedSessions.Inc()
	return updated, nil
}

// sessionDuration measures start→end as same-day wall-clock difference. An
// inverted pair clamps to zero and is logged as a ledger inconsistency
// rather than producing a negative or wrapped duration.
func (s *AttendanceServiceImpl) sessionDuration(employeeID, start, end string) (string, error) {
	startSecs, err := timefmt.Seconds(start)
	if err != nil {
		return "", storeFailure("parse session start", err)
	}
	endSecs, err := timefmt.Seconds(end)
	if err != nil {
		return "", storeFailure("parse session end", err)
	}
	if endSecs < startSecs {
		slog.Warn("Session end precedes its start, clamping duration to zero",
			"employee_id", employeeID,
			"session_start", start,
			"session_end", end)
		return timefmt.Zero, nil
	}
	return timefmt.Format(endSecs - startSecs), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if validator.IsEmpty(employeeID) {
		return attendance.ListAttendanceResponse{}, attendance.ErrInvalidEmployeeID
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	records, total, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, storeFailure("list attendance records", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

func toResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		Date:             rec.Date,
		FirstClockIn:     rec.FirstClockIn,
		LastClockOut:     rec.LastClockOut,
		NumClockIns:      rec.NumClockIns,
		TotalHoursWorked: rec.TotalHoursWorked,
		ClockedIn:        rec.SessionOpen(),
	}
}
