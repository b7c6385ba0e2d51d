package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/officetrack/attendance-backend-go/internal/domain/attendance"
	"github.com/officetrack/attendance-backend-go/internal/domain/user"
)

// AttendanceJobs holds scheduled work for the attendance ledger.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	userRepo      user.UserRepository
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, userRepo user.UserRepository) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		userRepo:      userRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("backfill_missing_checkouts", 1*time.Hour, j.BackfillMissingCheckouts)
}

// BackfillMissingCheckouts settles the last unclosed first-entry row for
// every active user. The check-in path does the same per user; this job is
// the safety net for users who never came back. Runs in the 23:xx window.
func (j *AttendanceJobs) BackfillMissingCheckouts(ctx context.Context) error {
	if time.Now().UTC().Hour() != 23 {
		return nil
	}

	slog.Info("Cron: Starting checkout backfill job")

	users, err := j.userRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	backfilled := 0
	for _, u := range users {
		if err := j.attendanceSvc.BackfillMissingCheckout(ctx, u.ID, today); err != nil {
			slog.Error("Cron: Backfill failed for user", "user_id", u.ID, "error", err)
			continue
		}
		backfilled++
	}

	slog.Info("Cron: Checkout backfill completed", "users", backfilled)
	return nil
}
