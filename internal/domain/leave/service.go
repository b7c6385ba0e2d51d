package leave

import (
	"context"
	"time"
)

// LeaveService is the leave workflow: requesting, deciding, balance
// tracking, and the unannounced-leave sweep.
type LeaveService interface {
	// Request creates a pending leave for the user.
	Request(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error)

	// Decide transitions a pending leave to accepted or rejected. On
	// acceptance the tracker update runs in the same transaction; the
	// returned Notice, when non-nil, is for the caller to dispatch.
	Decide(ctx context.Context, leaveID string, req DecideLeaveRequest, deciderID string) (LeaveResponse, *Notice, error)

	// HasActiveLeaveOn reports whether an accepted leave covers the date.
	HasActiveLeaveOn(ctx context.Context, userID string, date time.Time) (bool, error)

	// RunUnannouncedSweep creates an accepted unannounced leave for every
	// active user with neither an attendance entry nor an active leave
	// today. Returns the notices for created leaves. Idempotent per
	// user per day.
	RunUnannouncedSweep(ctx context.Context) ([]Notice, error)

	// GetTracker returns the user's current leave balance usage.
	GetTracker(ctx context.Context, userID string) (TrackerResponse, error)

	// ListMyLeaves returns the user's leaves, newest first.
	ListMyLeaves(ctx context.Context, userID string) ([]LeaveResponse, error)

	// ListPending returns pending leaves awaiting a decision, oldest first.
	ListPending(ctx context.Context) ([]LeaveResponse, error)
}
