package cron

import (
	"context"
	"time"

	"github.com/hrpoint/attendance-backend-go/internal/domain/attendance"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/clock"
)

// AttendanceJobs owns the two day-boundary sweeps: closing still-open
// sessions just before midnight, and a rollover pass just after it for
// anything the first sweep missed (process down at 23:59, for example).
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	clk           clock.Clock
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, clk clock.Clock) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		clk:           clk,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("finalize_day_attendance", time.Minute, j.FinalizeOpenSessions)
	scheduler.AddJob("rollover_attendance_day", time.Minute, j.RolloverDay)
}

// FinalizeOpenSessions acts only in the last minute of the local day so the
// closing duration is still same-day arithmetic.
func (j *AttendanceJobs) FinalizeOpenSessions(ctx context.Context) error {
	now := j.clk.Now()
	if now.Hour() != 23 || now.Minute() != 59 {
		return nil
	}
	return j.attendanceSvc.ResetForNewDay(ctx)
}

// RolloverDay acts in the first five minutes after midnight. Sessions left
// open across the boundary are closed with the end-of-day sentinel; the next
// clock-in creates a fresh record keyed by the new date.
func (j *AttendanceJobs) RolloverDay(ctx context.Context) error {
	now := j.clk.Now()
	if now.Hour() != 0 || now.Minute() >= 5 {
		return nil
	}
	return j.attendanceSvc.ResetForNewDay(ctx)
}
