package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// Update updates out_time, total_hours and is_first_entry on an existing row
	Update(ctx context.Context, att Attendance) error

	// GetOpenEntry returns the row for (user, day) with out_time unset, or nil
	GetOpenEntry(ctx context.Context, userID string, day time.Time) (*Attendance, error)

	// HasEntryOn reports whether any row exists for (user, day)
	HasEntryOn(ctx context.Context, userID string, day time.Time) (bool, error)

	// HasFirstEntryOn reports whether a row for (user, day) already carries
	// the first-entry flag. Used to keep MarkFirstEntryOfDay idempotent.
	HasFirstEntryOn(ctx context.Context, userID string, day time.Time) (bool, error)

	// GetEarliestEntryOn returns the earliest row for (user, day), or nil
	GetEarliestEntryOn(ctx context.Context, userID string, day time.Time) (*Attendance, error)

	// GetLastUnclosedFirstEntry returns the most recent first-entry row for the
	// user on a day other than `excludeDay` whose total_hours is still unset,
	// or nil when every earlier day is settled.
	GetLastUnclosedFirstEntry(ctx context.Context, userID string, excludeDay time.Time) (*Attendance, error)

	// ListByUserAndRange retrieves rows for a user between two dates inclusive
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)
}
