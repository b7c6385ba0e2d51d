package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
	"github.com/officetrack/attendance-backend-go/internal/pkg/database"
)

type trackerRepositoryImpl struct {
	db *database.DB
}

func NewTrackerRepository(db *database.DB) leave.TrackerRepository {
	return &trackerRepositoryImpl{db: db}
}

// GetByUserID implements leave.TrackerRepository.
func (r *trackerRepositoryImpl) GetByUserID(ctx context.Context, userID string) (leave.Tracker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, casual_used, sick_used, unannounced_count, total_accepted, updated_at
		FROM leave_trackers
		WHERE user_id = $1
	`

	var t leave.Tracker
	err := q.QueryRow(ctx, query, userID).Scan(
		&t.UserID,
		&t.CasualUsed,
		&t.SickUsed,
		&t.UnannouncedCount,
		&t.TotalAccepted,
		&t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Tracker{}, leave.ErrTrackerNotFound
	}
	if err != nil {
		return leave.Tracker{}, err
	}

	return t, nil
}

// Upsert implements leave.TrackerRepository.
func (r *trackerRepositoryImpl) Upsert(ctx context.Context, t leave.Tracker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_trackers (user_id, casual_used, sick_used, unannounced_count, total_accepted, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET casual_used = EXCLUDED.casual_used,
		    sick_used = EXCLUDED.sick_used,
		    unannounced_count = EXCLUDED.unannounced_count,
		    total_accepted = EXCLUDED.total_accepted,
		    updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, t.UserID, t.CasualUsed, t.SickUsed, t.UnannouncedCount, t.TotalAccepted)
	return err
}
