package leave

import (
	"context"
	"fmt"

	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
)

// onLeaveAccepted recomputes the user's tracker from the full accepted set
// and persists it. It runs on the caller's context, so inside a transaction
// it reads the acceptance that triggered it.
func (s *LeaveServiceImpl) onLeaveAccepted(ctx context.Context, userID string) error {
	accepted, err := s.LeaveRepository.ListAcceptedByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list accepted leaves: %w", err)
	}

	t := leave.Tracker{UserID: userID}
	for i := range accepted {
		l := &accepted[i]
		days := l.Days()

		switch l.Type {
		case leave.TypeCasual:
			t.CasualUsed += days
		case leave.TypeSick:
			t.SickUsed += days
		case leave.TypeUnannounced:
			t.UnannouncedCount++
		}
		t.TotalAccepted += days
	}

	if err := s.TrackerRepository.Upsert(ctx, t); err != nil {
		return fmt.Errorf("failed to persist tracker: %w", err)
	}

	return nil
}
