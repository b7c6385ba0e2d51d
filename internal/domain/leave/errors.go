package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound      = errors.New("leave record not found")
	ErrAlreadyProcessed   = errors.New("leave has already been accepted or rejected")
	ErrOverlappingLeave   = errors.New("an accepted leave already covers part of this range")
	ErrTrackerNotFound    = errors.New("leave tracker not found")
	ErrInvalidOutcome     = errors.New("outcome must be accepted or rejected")
	ErrUnauthorizedAccess = errors.New("unauthorized to access this leave record")
)
