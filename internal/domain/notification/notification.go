package notification

import (
	"context"

	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
)

// Service delivers leave notifications. Delivery is best-effort and
// asynchronous; callers never see or handle send failures.
type Service interface {
	// QueueLeaveDecided notifies the user that their request was decided.
	QueueLeaveDecided(ctx context.Context, n leave.Notice) error

	// QueueUnannouncedLeave notifies the user that an unannounced leave
	// was recorded against them.
	QueueUnannouncedLeave(ctx context.Context, n leave.Notice) error

	// Stop drains the queue and stops background workers.
	Stop()
}
