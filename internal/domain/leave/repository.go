package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access methods for leave records.
type LeaveRepository interface {
	// Create inserts a new leave record
	Create(ctx context.Context, l Leave) (Leave, error)

	// GetByID retrieves a leave by ID
	GetByID(ctx context.Context, id string) (Leave, error)

	// UpdateStatus transitions a leave's status and records the decider
	UpdateStatus(ctx context.Context, id string, status Status, decidedBy *string, decidedAt time.Time) error

	// FindAcceptedCovering returns accepted leaves for the user covering the
	// date: single-day rows matching start_date, or ranges spanning it.
	FindAcceptedCovering(ctx context.Context, userID string, date time.Time) ([]Leave, error)

	// FindAcceptedOverlapping returns accepted leaves intersecting [start, end]
	FindAcceptedOverlapping(ctx context.Context, userID string, start, end time.Time) ([]Leave, error)

	// ListAcceptedByUser retrieves every accepted leave for the user
	ListAcceptedByUser(ctx context.Context, userID string) ([]Leave, error)

	// ListByUser retrieves all leaves for a user, newest first
	ListByUser(ctx context.Context, userID string) ([]Leave, error)

	// ListPending retrieves pending leaves across users, oldest first
	ListPending(ctx context.Context) ([]Leave, error)
}

// TrackerRepository defines data access methods for leave trackers.
type TrackerRepository interface {
	// GetByUserID retrieves the user's tracker
	GetByUserID(ctx context.Context, userID string) (Tracker, error)

	// Upsert writes the tracker, creating the row when missing. Joins the
	// caller's transaction when one is carried in the context.
	Upsert(ctx context.Context, t Tracker) error
}
