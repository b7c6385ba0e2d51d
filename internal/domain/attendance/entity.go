package attendance

import "time"

// DefaultBackfillHours is credited to a first-entry row whose checkout was
// never recorded. Policy is a fixed constant, not derived from elapsed time.
const DefaultBackfillHours = 2.0

type Attendance struct {
	ID          string
	UserID      string
	CheckinDate time.Time // calendar day, truncated
	InTime      time.Time
	OutTime     *time.Time // nil while the session is open

	// IsFirstEntry marks the row that opened the user's working day.
	// At most one row per (user, day) carries it.
	IsFirstEntry bool

	TotalHours *float64 // nil until checkout or backfill

	// ParentID optionally links to a supervising check-in record.
	ParentID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserName  *string
	UserEmail *string
}
