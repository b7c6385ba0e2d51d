package leave

import (
	"time"

	"github.com/officetrack/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

type CreateLeaveRequest struct {
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    string  `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	switch Type(r.Type) {
	case TypeCasual, TypeSick:
	case TypeUnannounced:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "unannounced leave cannot be requested manually",
		})
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be casual or sick",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) || !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}

	if r.EndDate != nil && *r.EndDate != "" {
		end, endOK := validator.IsValidDate(*r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideLeaveRequest struct {
	Outcome string `json:"outcome"`
}

func (r *DecideLeaveRequest) Validate() error {
	switch Status(r.Outcome) {
	case StatusAccepted, StatusRejected:
		return nil
	default:
		return ErrInvalidOutcome
	}
}

type LeaveResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	UserName  *string    `json:"user_name,omitempty"`
	Type      string     `json:"type"`
	StartDate string     `json:"start_date"`
	EndDate   *string    `json:"end_date,omitempty"`
	Status    string     `json:"status"`
	Reason    string     `json:"reason,omitempty"`
	DecidedBy *string    `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type TrackerResponse struct {
	UserID           string  `json:"user_id"`
	CasualUsed       float64 `json:"casual_used"`
	SickUsed         float64 `json:"sick_used"`
	UnannouncedCount int     `json:"unannounced_count"`
	TotalAccepted    float64 `json:"total_accepted"`
}

// Notice is the post-transition event returned by Decide and the sweep.
// The caller dispatches it to the notification service; delivery failure
// never affects the state transition that produced it.
type Notice struct {
	Leave     Leave
	UserEmail string
	UserName  string
}
