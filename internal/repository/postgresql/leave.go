package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
	"github.com/officetrack/attendance-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `l.id, l.user_id, l.type, l.start_date, l.end_date, l.status, l.reason, l.decided_by, l.decided_at, l.created_at, l.updated_at`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Type,
		&l.StartDate,
		&l.EndDate,
		&l.Status,
		&l.Reason,
		&l.DecidedBy,
		&l.DecidedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves AS l (user_id, type, start_date, end_date, status, reason, decided_by, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		l.UserID,
		l.Type,
		l.StartDate,
		l.EndDate,
		l.Status,
		l.Reason,
		l.DecidedBy,
		l.DecidedAt,
	))
	if err != nil {
		return leave.Leave{}, err
	}

	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, u.name, u.email
		FROM leaves l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`

	var l leave.Leave
	err := q.QueryRow(ctx, query, id).Scan(
		&l.ID,
		&l.UserID,
		&l.Type,
		&l.StartDate,
		&l.EndDate,
		&l.Status,
		&l.Reason,
		&l.DecidedBy,
		&l.DecidedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.UserName,
		&l.UserEmail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	if err != nil {
		return leave.Leave{}, err
	}

	return l, nil
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, decidedBy *string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, status, decidedBy, decidedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// FindAcceptedCovering implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) FindAcceptedCovering(ctx context.Context, userID string, date time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		WHERE l.user_id = $1
		  AND l.status = 'accepted'
		  AND (
			(l.end_date IS NULL AND l.start_date = $2)
			OR (l.end_date IS NOT NULL AND l.start_date <= $2 AND l.end_date >= $2)
		  )
	`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// FindAcceptedOverlapping implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) FindAcceptedOverlapping(ctx context.Context, userID string, start, end time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		WHERE l.user_id = $1
		  AND l.status = 'accepted'
		  AND l.start_date <= $3
		  AND COALESCE(l.end_date, l.start_date) >= $2
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// ListAcceptedByUser implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListAcceptedByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		WHERE l.user_id = $1 AND l.status = 'accepted'
		ORDER BY l.start_date ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// ListByUser implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// ListPending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListPending(ctx context.Context) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, u.name, u.email
		FROM leaves l
		JOIN users u ON u.id = l.user_id
		WHERE l.status = 'pending'
		ORDER BY l.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []leave.Leave
	for rows.Next() {
		var l leave.Leave
		err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.Type,
			&l.StartDate,
			&l.EndDate,
			&l.Status,
			&l.Reason,
			&l.DecidedBy,
			&l.DecidedAt,
			&l.CreatedAt,
			&l.UpdatedAt,
			&l.UserName,
			&l.UserEmail,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func collectLeaves(rows pgx.Rows) ([]leave.Leave, error) {
	var list []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
