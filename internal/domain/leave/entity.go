package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Type string

const (
	TypeCasual      Type = "casual"
	TypeSick        Type = "sick"
	TypeUnannounced Type = "unannounced"
)

// Leave is a single leave record. Manual requests start in pending;
// unannounced leaves are created by the sweep directly in accepted.
type Leave struct {
	ID     string
	UserID string
	Type   Type

	StartDate time.Time
	// EndDate is nil for a single-day leave.
	EndDate *time.Time

	Status Status
	Reason string

	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserName  *string
	UserEmail *string
}

// Days returns the inclusive calendar length of the leave.
func (l *Leave) Days() float64 {
	if l.EndDate == nil {
		return 1
	}
	return float64(int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1)
}

// Covers reports whether the leave spans the given date: an exact start-date
// match for single-day leaves, start <= date <= end inclusive for ranges.
func (l *Leave) Covers(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	start := l.StartDate.Truncate(24 * time.Hour)

	if l.EndDate == nil {
		return start.Equal(day)
	}

	end := l.EndDate.Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}

// Tracker holds a user's running leave usage, one row per user.
// It is recomputed from the full accepted set on every acceptance.
type Tracker struct {
	UserID           string
	CasualUsed       float64
	SickUsed         float64
	UnannouncedCount int
	TotalAccepted    float64
	UpdatedAt        time.Time
}
