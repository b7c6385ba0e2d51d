package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
	"github.com/officetrack/attendance-backend-go/internal/domain/notification"
)

// LeaveJobs holds scheduled work for the leave workflow.
type LeaveJobs struct {
	leaveSvc leave.LeaveService
	notifSvc notification.Service
}

func NewLeaveJobs(leaveSvc leave.LeaveService, notifSvc notification.Service) *LeaveJobs {
	return &LeaveJobs{
		leaveSvc: leaveSvc,
		notifSvc: notifSvc,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("unannounced_leave_sweep", 1*time.Hour, j.RunUnannouncedSweep)
}

// RunUnannouncedSweep records an accepted unannounced leave for every active
// user who neither checked in nor has leave covering today. Gated to the
// 20:00-20:59 window so the day being judged is effectively over.
func (j *LeaveJobs) RunUnannouncedSweep(ctx context.Context) error {
	if time.Now().UTC().Hour() != 20 {
		return nil
	}

	slog.Info("Cron: Starting unannounced leave sweep")

	notices, err := j.leaveSvc.RunUnannouncedSweep(ctx)
	if err != nil {
		return fmt.Errorf("unannounced sweep: %w", err)
	}

	for _, n := range notices {
		if err := j.notifSvc.QueueUnannouncedLeave(ctx, n); err != nil {
			slog.Error("Cron: Failed to queue unannounced leave notification",
				"user_id", n.Leave.UserID, "error", err)
		}
	}

	slog.Info("Cron: Unannounced leave sweep completed", "recorded", len(notices))
	return nil
}
