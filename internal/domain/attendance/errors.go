package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrNotCheckedIn       = errors.New("no open attendance entry to check out")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
