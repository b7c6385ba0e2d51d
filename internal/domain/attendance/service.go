package attendance

import (
	"context"
	"time"
)

// AttendanceService is the attendance ledger.
type AttendanceService interface {
	// CheckIn opens a session for today. Rejects when one is already open.
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's open session and records elapsed hours.
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)

	// FindTodaysOpenEntry returns today's row with out_time unset, or nil.
	FindTodaysOpenEntry(ctx context.Context, userID string) (*Attendance, error)

	// MarkFirstEntryOfDay flags the day's earliest row as the first entry.
	// Idempotent: a no-op when the flag is already set for that day.
	MarkFirstEntryOfDay(ctx context.Context, userID string, day time.Time) error

	// BackfillMissingCheckout settles the user's most recent unclosed
	// first-entry row from a day before `day` with the default hours.
	BackfillMissingCheckout(ctx context.Context, userID string, day time.Time) error

	// ListMyAttendance retrieves the calling user's rows.
	ListMyAttendance(ctx context.Context, userID string, filter Filter) (ListAttendanceResponse, error)

	// List retrieves attendance rows across users, for approvers.
	List(ctx context.Context, filter Filter) (ListAttendanceResponse, error)
}
